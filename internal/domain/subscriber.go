// Package domain contains the core entities shared across packages.
package domain

// Subscriber is a named individual and the channel they subscribe to.
type Subscriber struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	SubscribedChannel string `json:"subscribedChannel"`
}
