package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"charactervault/web/internal/auth"
	"charactervault/web/internal/cache"
	"charactervault/web/internal/character"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/models"
	"charactervault/web/internal/pagination"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CharacterResponse is a character as returned by the API.
type CharacterResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Harry Potter"`
	House     string    `json:"house,omitempty" example:"Gryffindor"`
	Role      string    `json:"role,omitempty" example:"Student"`
	Strength  string    `json:"strength,omitempty" example:"Bravery"`
	Animal    string    `json:"animal,omitempty" example:"Stag"`
	Symbol    string    `json:"symbol,omitempty"`
	Nickname  string    `json:"nickname,omitempty" example:"The Boy Who Lived"`
	Age       *int      `json:"age" example:"17"`
	Death     *int      `json:"death"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginatedCharacterResponse defines the structure for a paginated list of characters.
type PaginatedCharacterResponse struct {
	Data []CharacterResponse `json:"data"`
	Meta pagination.Meta     `json:"meta"`
}

func buildCharacterResponse(ch models.Character) CharacterResponse {
	return CharacterResponse{
		ID:        ch.ID,
		Name:      ch.Name,
		House:     ch.HouseName(),
		Role:      ch.RoleName(),
		Strength:  ch.StrengthName(),
		Animal:    ch.Animal,
		Symbol:    ch.Symbol,
		Nickname:  ch.Nickname,
		Age:       ch.Age,
		Death:     ch.Death,
		CreatedAt: ch.CreatedAt,
	}
}

// endregion

// ListCharacters godoc
// @Summary      List my characters
// @Description  Returns the caller's characters with the same filters, sorting and paging as the character list page.
// @Tags         characters
// @Produce      json
// @Param        search         query     string  false  "Case-insensitive substring of the name"
// @Param        house          query     string  false  "Case-insensitive substring of the house name"
// @Param        role           query     string  false  "Case-insensitive substring of the role name"
// @Param        strength       query     string  false  "Case-insensitive substring of the strength name"
// @Param        age_more_than  query     int     false  "Minimum age, inclusive"
// @Param        age_less_than  query     int     false  "Maximum age, inclusive"
// @Param        sort_column    query     string  false  "Sort column" Enums(name, age, death, nickname, animal, symbol, created_at, updated_at)
// @Param        sort_order     query     string  false  "Sort direction" Enums(asc, desc)
// @Param        page           query     int     false  "Page number" default(1)
// @Success      200  {object}  PaginatedCharacterResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /characters [get]
func ListCharacters(c *gin.Context) {
	user := auth.CurrentUser(c)
	filter := character.ParseFilter(c.Request.URL.Query())

	page, err := character.List(database.DB, user.ID, filter, config.AppConfig.PageSize)
	if errors.Is(err, character.ErrInvalidSortColumn) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Printf("api character list for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve characters"})
		return
	}

	data := make([]CharacterResponse, 0, len(page.Data))
	for _, ch := range page.Data {
		data = append(data, buildCharacterResponse(ch))
	}
	c.JSON(http.StatusOK, PaginatedCharacterResponse{Data: data, Meta: page.Meta})
}

// ListTaxonomy godoc
// @Summary      List taxonomy options
// @Description  Returns every house, role or strength ordered by name.
// @Tags         taxonomies
// @Produce      json
// @Param        kind  path      string  true  "Taxonomy kind" Enums(houses, roles, strengths)
// @Success      200   {array}   character.Option
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /taxonomies/{kind} [get]
func ListTaxonomy(c *gin.Context) {
	kind, err := character.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	opts, err := cache.Remember(c.Request.Context(), cache.TaxonomyKey(string(kind)), func() ([]character.Option, error) {
		return character.ListTaxonomy(database.DB, kind)
	})
	if err != nil {
		log.Printf("api %s options: %v", kind, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve options"})
		return
	}
	c.JSON(http.StatusOK, opts)
}
