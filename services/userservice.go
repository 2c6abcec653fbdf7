package services

import (
	"context"
	"errors"

	"taskapp/model"

	"cloud.google.com/go/firestore"
)

func UserExist(ctx context.Context, firestoreClient *firestore.Client, email string) (bool, error) {
	usersCollection := firestoreClient.Collection("Users")
	query := usersCollection.Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

func GetUserData(ctx context.Context, firestoreClient *firestore.Client, email string) (*firestore.DocumentSnapshot, error) {
	usersCollection := firestoreClient.Collection("Users")
	query := usersCollection.Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("user not found")
	}
	return docs[0], nil
}

func GetUserDataByUserID(ctx context.Context, firestoreClient *firestore.Client, userID string) (*model.User, error) {
	docSnap, err := firestoreClient.Collection("Users").Doc(userID).Get(ctx)
	if err != nil {
		return nil, errors.New("user not found")
	}
	var user model.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserVerified flips the verified flag after a successful link visit.
func SetUserVerified(ctx context.Context, firestoreClient *firestore.Client, userID string) error {
	_, err := firestoreClient.Collection("Users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "verified", Value: true},
	})
	return err
}
