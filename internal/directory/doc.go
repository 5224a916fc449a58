// Package directory talks to the public key directory and caches its
// answers.
//
// The HTTP client wraps the two directory endpoints (GET a user's key
// bundle, POST the local user's bundle) over a caller-injected
// authenticated Doer. The cache memoizes both positive bundles and
// "known absent" results per account namespace, feeds every fetched
// bundle to the trust store, and can recover the local user's own
// missing entry by republishing before giving up.
package directory
