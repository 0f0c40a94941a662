package models

// Response wraps every successful payload so the root is never a scalar.
type Response struct {
	Data interface{} `json:"data"`
}
