package services

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clubreport/model"
)

// IsNotFound reports whether a Firestore error is a missing-document error,
// as opposed to a transport or permission failure.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ErrNotAuthorized covers every identity failure: missing session, missing
// user document, role mismatch. A lookup error reads the same as "no such
// user" so the check fails closed.
var ErrNotAuthorized = errors.New("not authorized")

type Identity struct {
	UID    string
	Role   string
	Leader string
}

// ResolveIdentity fetches users/{uid} and returns the principal's role and,
// for members, their leader. Callers must resolve before running any scoped
// query.
func ResolveIdentity(ctx context.Context, fb *firestore.Client, uid string) (*Identity, error) {
	doc, err := fb.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	user := model.UserFromDoc(doc)
	if user.Role != model.RoleAdmin && user.Role != model.RoleMember {
		return nil, ErrNotAuthorized
	}
	return &Identity{UID: uid, Role: user.Role, Leader: user.Leader}, nil
}

// ResolveAdmin resolves the principal and requires the admin role.
func ResolveAdmin(ctx context.Context, fb *firestore.Client, uid string) (*Identity, error) {
	ident, err := ResolveIdentity(ctx, fb, uid)
	if err != nil {
		return nil, err
	}
	if ident.Role != model.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	return ident, nil
}

// ResolveMember resolves the principal and requires the member role.
func ResolveMember(ctx context.Context, fb *firestore.Client, uid string) (*Identity, error) {
	ident, err := ResolveIdentity(ctx, fb, uid)
	if err != nil {
		return nil, err
	}
	if ident.Role != model.RoleMember {
		return nil, ErrNotAuthorized
	}
	return ident, nil
}

// GetUser is a point lookup on the users collection.
func GetUser(ctx context.Context, fb *firestore.Client, uid string) (*model.User, error) {
	doc, err := fb.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return nil, err
	}
	user := model.UserFromDoc(doc)
	return &user, nil
}
