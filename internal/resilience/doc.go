// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic for the external collaborators
// (the repository source and the embedding provider).
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.GitHubAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.GitHubAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
