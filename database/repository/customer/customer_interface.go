package customerRepo

// CustomerRepository exposes the single customer lookup the optimizer needs.
// Customer records themselves are owned by the management service.
type CustomerRepository interface {
	Exists(customerID string) (bool, error)
}
