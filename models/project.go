package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is the slice of a user that lives inside a project document. The
// owner is never part of the member list.
type Member struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
}

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	StoryPoints int                  `bson:"storyPoints" json:"storyPoints"`
	DueDate     time.Time            `bson:"dueDate" json:"dueDate"`
	Cost        int                  `bson:"cost" json:"cost"`
	OwnerID     primitive.ObjectID   `bson:"ownerId" json:"ownerId"`
	Members     []Member             `bson:"members" json:"members"`
	TaskIDs     []primitive.ObjectID `bson:"taskIds" json:"taskIds"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProjectRequest carries the mutable project fields for create and update.
type ProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StoryPoints int       `json:"storyPoints"`
	DueDate     time.Time `json:"dueDate"`
	Cost        int       `json:"cost"`
}
