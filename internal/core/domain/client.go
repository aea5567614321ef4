package domain

import "errors"

var ErrClientNotFound = errors.New("client not found")

// ErrClientInUse is returned when deleting a client that a user still references.
var ErrClientInUse = errors.New("client is referenced by a user")

// Client is a billing entity invoices are addressed to.
type Client struct {
	ID           int    `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	AddressLine1 string `json:"address_line1" bson:"address_line1"`
	AddressLine2 string `json:"address_line2" bson:"address_line2"`
	ContactEmail string `json:"contact_email" bson:"contact_email"`
}
