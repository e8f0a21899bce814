//go:generate mockgen -source=taxonomy.go -destination=mock_taxonomy.go -package=taxonomy
package taxonomy

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	taxtree "github.com/GlebRadaev/komodohub/internal/taxonomy"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type Resolver interface {
	Lookup(ctx context.Context, name string) (domain.Taxonomy, error)
}

type TaxonomyHandler struct {
	resolver Resolver
	tree     taxtree.Tree
}

func New(resolver Resolver, tree taxtree.Tree) *TaxonomyHandler {
	return &TaxonomyHandler{
		resolver: resolver,
		tree:     tree,
	}
}

// Lookup godoc
//
//	@Summary		Look up a scientific name
//	@Description	Resolves phylum, class, order, family and genus. Results are cached; phyla outside the allow-list are rejected.
//	@Tags			Taxonomy
//	@Produce		json
//	@Param			name	query		string	true	"Scientific name"
//	@Success		200		{object}	domain.Taxonomy
//	@Failure		404		{object}	utils.Response	"Name not found"
//	@Failure		422		{object}	utils.Response	"Empty name or phylum not allowed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/taxonomy [get]
func (h *TaxonomyHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	t, err := h.resolver.Lookup(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// Tree godoc
//
//	@Summary		Taxonomy tree
//	@Description	Built-in phylum, class, order, family and genus tree used by the report form.
//	@Tags			Taxonomy
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/api/taxonomy/tree [get]
func (h *TaxonomyHandler) Tree(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.tree)
}
