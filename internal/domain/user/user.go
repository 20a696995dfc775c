package user

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mnlocal/jobhub/internal/domain/listing"
)

// Salt is the per-account integer mixed into the password digest. It is
// generated once at sign-up and never changes. Legacy records persisted it
// as a decimal string; both forms decode to the same numeric value so
// digests computed at account creation keep verifying.
type Salt int64

func (s *Salt) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Salt(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("salt must be a number or numeric string")
	}

	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fmt.Errorf("salt %q is not numeric: %w", str, err)
	}

	*s = Salt(n)
	return nil
}

type User struct {
	Email      string            `json:"email"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Location   string            `json:"location"`
	Password   string            `json:"password"` // digest of plaintext+salt, never the plaintext
	Salt       Salt              `json:"salt"`
	Listings   []listing.Listing `json:"listings"`
	ProfilePic string            `json:"profile_pic"`
	Age        json.RawMessage   `json:"age,omitempty"`
}

// Profile is the subset of User the get_profile command exposes.
type Profile struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	ProfilePic string `json:"profile_pic"`
}

func (u User) Profile() Profile {
	return Profile{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Location:   u.Location,
		ProfilePic: u.ProfilePic,
	}
}
