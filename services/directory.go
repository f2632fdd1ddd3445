package services

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"clubreport/model"
)

// ListMembers returns every user whose leader field equals leaderID. An empty
// result is a valid "no members" state, not an error.
func ListMembers(ctx context.Context, fb *firestore.Client, leaderID string) ([]model.User, error) {
	iter := fb.Collection("users").Where("leader", "==", leaderID).Documents(ctx)
	defer iter.Stop()

	var members []model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		members = append(members, model.UserFromDoc(doc))
	}
	return members, nil
}

func MemberIDs(members []model.User) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UID)
	}
	return ids
}

// UpdateMemberProfile rewrites the editable profile fields of a member
// document. Role and leader are not touched here.
func UpdateMemberProfile(ctx context.Context, fb *firestore.Client, uid, firstName, lastName, grade string) error {
	_, err := fb.Collection("users").Doc(uid).Update(ctx, []firestore.Update{
		{Path: "firstName", Value: firstName},
		{Path: "lastName", Value: lastName},
		{Path: "grade", Value: grade},
	})
	return err
}

// RemoveMember detaches a member from their team by deleting the leader
// field. The user document and the member's reports remain.
func RemoveMember(ctx context.Context, fb *firestore.Client, uid string) error {
	_, err := fb.Collection("users").Doc(uid).Update(ctx, []firestore.Update{
		{Path: "leader", Value: firestore.Delete},
	})
	return err
}
