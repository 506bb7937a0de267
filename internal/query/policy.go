package query

import "time"

// Resource classifies cached data by its staleness and retry behavior.
type Resource string

const (
	ResourceCategories     Resource = "categories"
	ResourceTags           Resource = "tags"
	ResourceProducts       Resource = "products"
	ResourceAdminProducts  Resource = "admin_products"
	ResourceShippingCities Resource = "shipping_cities"
	ResourceShippingPrice  Resource = "shipping_price"
	ResourceCoupons        Resource = "coupons"
	ResourceDiscounts      Resource = "discounts"
	ResourceOrders         Resource = "orders"
	ResourceDashboard      Resource = "dashboard"
)

// StaleNever marks a resource that is only refetched after explicit
// invalidation.
const StaleNever time.Duration = -1

// Policy is the per-resource staleness window and retry budget. Retry
// backoff is exponential: BackoffBase doubling per attempt, capped at
// BackoffCap.
type Policy struct {
	StaleAfter   time.Duration
	RetryClient  int // retry budget for 4xx responses
	RetryOther   int // retry budget for transport/5xx errors
	BackoffBase  time.Duration
	BackoffCap   time.Duration
}

// policies is the declarative table, constructed once and referenced
// everywhere, so retry behavior cannot drift between call sites. Product
// listing classes get the longer backoff cap; everything else gives up
// sooner.
var policies = map[Resource]Policy{
	ResourceCategories:     {StaleAfter: StaleNever, RetryClient: 1, RetryOther: 3, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceTags:           {StaleAfter: 10 * time.Minute, RetryClient: 1, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceProducts:       {StaleAfter: 5 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 30 * time.Second},
	ResourceAdminProducts:  {StaleAfter: 2 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 30 * time.Second},
	ResourceShippingCities: {StaleAfter: StaleNever, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceShippingPrice:  {StaleAfter: 10 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceCoupons:        {StaleAfter: 2 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceDiscounts:      {StaleAfter: 2 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceOrders:         {StaleAfter: time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
	ResourceDashboard:      {StaleAfter: 5 * time.Minute, RetryClient: 0, RetryOther: 2, BackoffBase: time.Second, BackoffCap: 10 * time.Second},
}

// defaultPolicy covers resources missing from the table.
var defaultPolicy = Policy{
	StaleAfter:  5 * time.Minute,
	RetryClient: 0,
	RetryOther:  2,
	BackoffBase: time.Second,
	BackoffCap:  10 * time.Second,
}

// PolicyFor returns the policy for a resource.
func PolicyFor(r Resource) Policy {
	if p, ok := policies[r]; ok {
		return p
	}
	return defaultPolicy
}

// backoff returns the wait before retry attempt n (1-based).
func (p Policy) backoff(attempt int) time.Duration {
	wait := p.BackoffBase << uint(attempt-1)
	if wait > p.BackoffCap {
		return p.BackoffCap
	}
	return wait
}

// retryBudget returns how many retries the policy allows for the given
// failure class.
func (p Policy) retryBudget(clientError bool) int {
	if clientError {
		return p.RetryClient
	}
	return p.RetryOther
}

// fresh reports whether a value fetched at t is still usable now.
func (p Policy) fresh(fetchedAt, now time.Time) bool {
	if p.StaleAfter == StaleNever {
		return true
	}
	return now.Sub(fetchedAt) < p.StaleAfter
}
