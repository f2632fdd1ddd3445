package services

import (
	"context"
	"errors"
	"testing"

	"clubreport/model"
)

// Every shipped policy must be defined at zero and monotonic non-decreasing.
func TestScorePoliciesWellBehaved(t *testing.T) {
	policies := map[string]ScorePolicy{
		"identity": IdentityScore,
		"sqrt":     SqrtScore,
		"logblend": LogBlendScore,
	}
	inputs := []int64{0, 1, 5, 10, 30, 50, 100, 1000}

	for name, policy := range policies {
		zero := policy(0)
		if zero != zero { // NaN check
			t.Fatalf("%s: score at 0 is NaN", name)
		}
		prev := policy(inputs[0])
		for _, n := range inputs[1:] {
			got := policy(n)
			if got < prev {
				t.Fatalf("%s: not monotonic at %d: %f < %f", name, n, got, prev)
			}
			prev = got
		}
	}
}

func TestPolicyByName(t *testing.T) {
	if PolicyByName("identity")(50) != 50 {
		t.Fatal("identity policy should return its input")
	}
	// Unknown names fall back to the default policy.
	if PolicyByName("")(50) != LogBlendScore(50) {
		t.Fatal("unknown policy name should fall back to the log blend")
	}
	if PolicyByName("nonsense")(0) != LogBlendScore(0) {
		t.Fatal("unknown policy name should fall back to the log blend")
	}
}

func TestScoreMembersIncludesZeroReportMembers(t *testing.T) {
	members := []model.User{
		{UID: "a", LastName: "Yamada", FirstName: "Taro"},
		{UID: "b", LastName: "Sato", FirstName: "Hanako"},
	}
	totals := map[string]int64{"a": 80} // b has no reports

	out, err := scoreMembers(context.Background(), members, func(ctx context.Context, uid string) (int64, error) {
		return totals[uid], nil
	}, IdentityScore)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 2 {
		t.Fatalf("expected an entry per member, got %d", len(out))
	}
	if out[0].MemberName != "Yamada Taro" || out[0].Score != 80 {
		t.Fatalf("unexpected first entry: %+v", out[0])
	}
	if out[1].MemberName != "Sato Hanako" {
		t.Fatalf("directory order not preserved: %+v", out[1])
	}
	if out[1].Score != 0 {
		t.Fatalf("zero-report member should score policy(0), got %f", out[1].Score)
	}
	if out[1].Score != out[1].Score {
		t.Fatal("zero-report member scored NaN")
	}
}

func TestScoreMembersPropagatesError(t *testing.T) {
	members := []model.User{{UID: "a"}, {UID: "b"}}
	boom := errors.New("sum failed")

	_, err := scoreMembers(context.Background(), members, func(ctx context.Context, uid string) (int64, error) {
		if uid == "b" {
			return 0, boom
		}
		return 10, nil
	}, IdentityScore)
	if err == nil {
		t.Fatal("expected the sum error to propagate")
	}
}
