package model

import (
	"cloud.google.com/go/firestore"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is a document in the "users" collection. For members, Leader holds the
// uid of the admin they report to; it is empty for admins and for members that
// were removed from a team.
type User struct {
	UID       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Leader    string `json:"leader"`
	Grade     string `json:"grade"`
}

func (u User) DisplayName() string {
	if u.LastName == "" && u.FirstName == "" {
		return ""
	}
	return u.LastName + " " + u.FirstName
}

func (u User) Map() map[string]interface{} {
	return map[string]interface{}{
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"role":      u.Role,
		"leader":    u.Leader,
		"grade":     u.Grade,
	}
}

// UserFromData decodes a raw document into a User. Missing or mistyped fields
// default to the empty string; decoding is centralized here so the defaulting
// rules are applied once.
func UserFromData(uid string, data map[string]interface{}) User {
	return User{
		UID:       uid,
		FirstName: stringField(data, "firstName"),
		LastName:  stringField(data, "lastName"),
		Role:      stringField(data, "role"),
		Leader:    stringField(data, "leader"),
		Grade:     stringField(data, "grade"),
	}
}

func UserFromDoc(doc *firestore.DocumentSnapshot) User {
	return UserFromData(doc.Ref.ID, doc.Data())
}
