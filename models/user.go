package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
}

// CurrentUser is the authenticated principal for one request. It is extracted
// from the bearer token by the middleware and passed explicitly into every
// service operation.
type CurrentUser struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
}
