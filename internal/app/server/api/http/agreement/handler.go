package agreement

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"agreementlog/internal/app/server/api/http/middleware/auth"
	"agreementlog/internal/domain/agreement"
)

type Handler struct {
	service agreement.Servicer
	log     *slog.Logger
	authed  huma.Middlewares
	public  huma.Middlewares
}

// NewHandler builds the agreement endpoints. Owner-scoped operations
// (create, dashboard) run behind authed; the countersigner-facing ones
// (lookup, countersign) behind public, where the hash is the capability.
func NewHandler(service agreement.Servicer, log *slog.Logger, authed, public huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		log:     log,
		authed:  authed,
		public:  public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.dashboardOp(), h.dashboard)
	huma.Register(api, h.lookupOp(), h.lookup)
	huma.Register(api, h.countersignOp(), h.countersign)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	ownerID, ok := auth.GetOwnerID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var attachment []byte
	if input.Body.Attachment != "" {
		var err error
		attachment, err = base64.StdEncoding.DecodeString(input.Body.Attachment)
		if err != nil {
			return &createOutput{Body: createResponse{
				Success: false,
				Message: "Attachment is not valid base64",
			}}, nil
		}
	}

	res, err := h.service.Create(ctx, ownerID, input.Body.AgreementText, attachment, input.Body.Category)
	if err != nil {
		return &createOutput{Body: createResponse{
			Success: false,
			Message: createFailureMessage(err),
		}}, nil
	}

	return &createOutput{Body: createResponse{
		Success: true,
		Hash:    res.Hash,
		Warning: res.AnchorWarning,
	}}, nil
}

func (h *Handler) lookup(ctx context.Context, input *lookupInput) (*lookupOutput, error) {
	if input.Body.Hash == "" {
		return &lookupOutput{Body: lookupResponse{
			Status:  "error",
			Message: "Hash is required",
		}}, nil
	}

	a, err := h.service.Lookup(ctx, input.Body.Hash)
	switch {
	case errors.Is(err, agreement.ErrNotFound):
		// Malformed and absent hashes read the same from outside.
		return &lookupOutput{Body: lookupResponse{
			Status:  "error",
			Message: "Agreement not found",
		}}, nil
	case errors.Is(err, agreement.ErrDecryption):
		return &lookupOutput{Body: lookupResponse{
			Status:  "error",
			Message: "Stored agreement could not be decrypted",
		}}, nil
	case err != nil:
		return &lookupOutput{Body: lookupResponse{
			Status:  "error",
			Message: "Database error",
		}}, nil
	}

	return &lookupOutput{Body: lookupResponse{
		Status:        "success",
		AgreementText: a.Text,
	}}, nil
}

func (h *Handler) dashboard(ctx context.Context, _ *struct{}) (*dashboardOutput, error) {
	ownerID, ok := auth.GetOwnerID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	res, err := h.service.Dashboard(ctx, ownerID)
	switch {
	case errors.Is(err, agreement.ErrDecryption):
		return &dashboardOutput{Body: dashboardResponse{
			Status:  "error",
			Message: "Stored agreement could not be decrypted",
		}}, nil
	case err != nil:
		return &dashboardOutput{Body: dashboardResponse{
			Status:  "error",
			Message: "Database error",
		}}, nil
	case res.Total == 0:
		return &dashboardOutput{Body: dashboardResponse{
			Status:  "error",
			Message: "No agreements found",
		}}, nil
	}

	return &dashboardOutput{Body: dashboardResponse{
		Status:     "success",
		Agreements: res.Agreements,
	}}, nil
}

func (h *Handler) countersign(ctx context.Context, input *countersignInput) (*countersignOutput, error) {
	if input.Body.Hash == "" {
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Missing hash",
		}}, nil
	}
	if input.Body.UserName == "" {
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Missing user name",
		}}, nil
	}

	res, err := h.service.Countersign(ctx, input.Body.Hash, input.Body.UserName)
	switch {
	case errors.Is(err, agreement.ErrAlreadySigned):
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Agreement already countersigned",
		}}, nil
	case errors.Is(err, agreement.ErrNotFound):
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Agreement not found",
		}}, nil
	case errors.Is(err, agreement.ErrInvalidInput):
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Missing user name",
		}}, nil
	case err != nil:
		return &countersignOutput{Body: countersignResponse{
			Success: false,
			Message: "Transaction failed",
		}}, nil
	}

	return &countersignOutput{Body: countersignResponse{
		Success: true,
		Warning: res.AnchorWarning,
	}}, nil
}

func createFailureMessage(err error) string {
	switch {
	case errors.Is(err, agreement.ErrInvalidInput):
		return "Missing required fields"
	case errors.Is(err, agreement.ErrDuplicateHash):
		return "This exact agreement was already logged"
	default:
		return "Transaction failed"
	}
}
