package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mnlocal/jobhub/internal/domain/listing"
	"github.com/mnlocal/jobhub/internal/domain/message"
	"github.com/mnlocal/jobhub/internal/domain/user"
	"github.com/mnlocal/jobhub/internal/repo/jsonfile"
)

// CredentialStore owns accounts: creation, authentication and profile
// mutations. Every mutating call re-validates credentials itself.
type CredentialStore interface {
	Authenticate(email, password string) bool
	EmailExists(email string) bool
	CreateAccount(password, email, firstName, lastName, location string) (user.User, error)
	ChangeEmail(email, password, newEmail string) error
	ChangePassword(email, password, newPassword string) error
	ChangeAge(email, password string, age json.RawMessage) error
	ChangeName(email, password, firstName, lastName string) error
	ChangeLocation(email, password, location string) error
	Location(email, password string) (string, error)
	Profile(email, password string) (user.Profile, error)
}

// ListingStore owns per-user listings and search across them.
type ListingStore interface {
	Search(query string) []listing.SearchResult
	CreateListing(email, password string, req listing.CreateRequest) (listing.Listing, error)
	DeleteListing(email, password, listingID string) error
	OwnListings(email, password string) ([]listing.Listing, error)
}

// MessageStore owns the append-only message collection.
type MessageStore interface {
	Append(from, to, text string) error
	Conversation(a, b string) []message.Message
}

// CommandHandler dispatches the single-endpoint command protocol: one JSON
// object per POST, discriminated by its "cmd" field.
type CommandHandler struct {
	users    CredentialStore
	listings ListingStore
	messages MessageStore
	log      *slog.Logger
	validate *validator.Validate
}

func NewCommandHandler(users CredentialStore, listings ListingStore, messages MessageStore, log *slog.Logger) *CommandHandler {
	return &CommandHandler{
		users:    users,
		listings: listings,
		messages: messages,
		log:      log,
		validate: validator.New(),
	}
}

type commandEnvelope struct {
	Cmd string `json:"cmd"`
}

func (h *CommandHandler) Dispatch(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondError(ctx, http.StatusRequestEntityTooLarge, "Request body too large")
			ctx.Abort()
			return
		}

		RespondError(ctx, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// an empty body dispatches as an empty object
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	var env commandEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		RespondError(ctx, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch env.Cmd {
	case "login":
		h.login(ctx, raw)
	case "sign_up":
		h.signUp(ctx, raw)
	case "change_email":
		h.changeEmail(ctx, raw)
	case "change_password":
		h.changePassword(ctx, raw)
	case "change_age":
		h.changeAge(ctx, raw)
	case "change_name":
		h.changeName(ctx, raw)
	case "change_location":
		h.changeLocation(ctx, raw)
	case "get_location":
		h.getLocation(ctx, raw)
	case "search_jobs":
		h.searchJobs(ctx, raw)
	case "get_messages":
		h.getMessages(ctx, raw)
	case "send_message":
		h.sendMessage(ctx, raw)
	case "create_listing":
		h.createListing(ctx, raw)
	case "get_profile":
		h.getProfile(ctx, raw)
	case "get_my_listings":
		h.getMyListings(ctx, raw)
	case "delete_listing":
		h.deleteListing(ctx, raw)
	default:
		RespondError(ctx, http.StatusBadRequest, "Invalid or unsupported command")
	}
}

// decode unmarshals a command body into its typed request. Dispatch already
// established the body is valid JSON, so failures here are type mismatches.
func (h *CommandHandler) decode(ctx *gin.Context, raw []byte, req any) bool {
	if err := json.Unmarshal(raw, req); err != nil {
		RespondError(ctx, http.StatusBadRequest, "Invalid JSON")
		return false
	}

	return true
}

// missingFields runs the required-tag checks on req and returns the JSON
// names of absent fields, in struct order.
func (h *CommandHandler) missingFields(req any) []string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	rt := reflect.TypeOf(req)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	missing := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		if fe.Tag() != "required" {
			continue
		}

		missing = append(missing, jsonFieldName(rt, fe.StructField()))
	}

	return missing
}

// respondChangeError maps profile-change store failures to the wire shapes.
func (h *CommandHandler) respondChangeError(ctx *gin.Context, err error) {
	if errors.Is(err, jsonfile.ErrInvalidCredentials) {
		RespondAuthFailed(ctx)
		return
	}

	h.log.Error("profile change failed", "err", err)
	RespondInternal(ctx, "Internal server error")
}

func jsonFieldName(rt reflect.Type, structField string) string {
	sf, ok := rt.FieldByName(structField)
	if !ok {
		return structField
	}

	tag := sf.Tag.Get("json")
	if tag == "" {
		return structField
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return structField
	}

	return name
}
