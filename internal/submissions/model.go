package submissions

import "time"

const (
	MsgReceived          = "Our team will get back to you shortly."
	MsgAlreadySubscribed = "Already subscribed!"
	MsgError             = "An error occurred"

	sourceHomepage = "homepage"
)

// Result is what the caller gets back from a submission. Storage failures are
// folded into it instead of surfacing as errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Contact struct {
	Email        string `json:"email" bson:"email" validate:"required,email,max=254"`
	Phone        string `json:"phone" bson:"phone" validate:"max=32"`
	Name         string `json:"name" bson:"name" validate:"max=200"`
	Country      string `json:"country" bson:"country" validate:"max=100"`
	IsFirst      bool   `json:"isFirst" bson:"isFirst"`
	IsSecond     bool   `json:"isSecond" bson:"isSecond"`
	IsThird      bool   `json:"isThird" bson:"isThird"`
	IsOthers     bool   `json:"isOthers" bson:"isOthers"`
	IsOthersText string `json:"isOthersText" bson:"isOthersText" validate:"max=2000"`
}

type NewsletterSignup struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"max=200"`
}

// ContactRecord is a contact as stored in the CONTACTS collection.
type ContactRecord struct {
	Contact   `bson:",inline"`
	ClaimedAt time.Time `bson:"claimedAt"`
	From      string    `bson:"from"`
}

// SubscriberRecord is a newsletter signup as stored in the SUBSCRIBERS collection.
type SubscriberRecord struct {
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	SubscribedAt time.Time `bson:"subscribedAt"`
	From         string    `bson:"from"`
}
