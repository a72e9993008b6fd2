package agreement

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "agreements-create",
		Method:      http.MethodPost,
		Path:        "/api/agreements",
		Summary:     "Commit an agreement",
		Description: "Fingerprints the submitted text (plus optional attachment), persists the encrypted record and anchors the hash externally.",
		Tags:        []string{"agreements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) dashboardOp() huma.Operation {
	return huma.Operation{
		OperationID: "agreements-dashboard",
		Method:      http.MethodGet,
		Path:        "/api/agreements",
		Summary:     "Owner dashboard listing",
		Tags:        []string{"agreements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authed,
	}
}

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "agreements-lookup",
		Method:      http.MethodPost,
		Path:        "/api/agreements/lookup",
		Summary:     "Resolve a hash to agreement text",
		Description: "Countersigner-facing point lookup; used for as-you-type hash validation.",
		Tags:        []string{"agreements"},
		Middlewares: h.public,
	}
}

func (h *Handler) countersignOp() huma.Operation {
	return huma.Operation{
		OperationID: "agreements-countersign",
		Method:      http.MethodPost,
		Path:        "/api/agreements/countersign",
		Summary:     "Countersign a pending agreement",
		Tags:        []string{"agreements"},
		Middlewares: h.public,
	}
}
