package model

import "time"

type User struct {
	UserID    string    `firestore:"userid,omitempty"`
	Username  string    `firestore:"username,omitempty"`
	Email     string    `firestore:"email,omitempty"`
	Password  string    `firestore:"password,omitempty"`
	Verified  bool      `firestore:"verified"`
	CreatedAt time.Time `firestore:"createdat,omitempty"`
}
