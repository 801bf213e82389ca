package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"charactervault/web/internal/auth"
	"charactervault/web/internal/cache"
	"charactervault/web/internal/character"
	"charactervault/web/internal/chardata"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/flash"

	"github.com/gin-gonic/gin"
)

const (
	characterListPath = "/user/character_list"
	addCharacterPath  = "/user/add_character"
)

// dashboardSummary is the cached block shown on the dashboard.
type dashboardSummary struct {
	Total  int64    `json:"total"`
	Recent []string `json:"recent"`
}

// Dashboard renders the logged-in user's landing page.
func Dashboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	summary, err := cache.Remember(c.Request.Context(), cache.UserSummaryKey(user.ID), func() (dashboardSummary, error) {
		total, err := character.CountOwned(database.DB, user.ID)
		if err != nil {
			return dashboardSummary{}, err
		}
		recent, err := character.Recent(database.DB, user.ID, 5)
		if err != nil {
			return dashboardSummary{}, err
		}
		s := dashboardSummary{Total: total, Recent: make([]string, 0, len(recent))}
		for _, ch := range recent {
			s.Recent = append(s.Recent, ch.Name)
		}
		return s, nil
	})
	if err != nil {
		log.Printf("dashboard summary for user %d: %v", user.ID, err)
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{"summary": summary})
}

// CharacterList renders the filtered, sorted and paginated character list.
// Requests sent with X-Requested-With: XMLHttpRequest get only the list
// fragment.
func CharacterList(c *gin.Context) {
	user := auth.CurrentUser(c)
	filter := character.ParseFilter(c.Request.URL.Query())

	page, err := character.List(database.DB, user.ID, filter, config.AppConfig.PageSize)
	if errors.Is(err, character.ErrInvalidSortColumn) {
		flash.Add(c, flash.Warning, fmt.Sprintf("Cannot sort by %q.", filter.SortColumn))
		filter.SortColumn = "name"
		page, err = character.List(database.DB, user.ID, filter, config.AppConfig.PageSize)
	}
	if err != nil {
		log.Printf("character list for user %d: %v", user.ID, err)
		flash.Add(c, flash.Danger, "Database error occurred.")
		render(c, http.StatusInternalServerError, "character_list.html", gin.H{"filter": filter})
		return
	}

	data := gin.H{
		"page":       page,
		"filter":     filter,
		"query":      filter.Query(),
		"taxonomies": taxonomyOptions(c.Request.Context()),
	}
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		render(c, http.StatusOK, "manage_character_content.html", data)
		return
	}
	render(c, http.StatusOK, "character_list.html", data)
}

// ShowAddCharacter renders the add form.
func ShowAddCharacter(c *gin.Context) {
	render(c, http.StatusOK, "add_character.html", gin.H{
		"taxonomies": taxonomyOptions(c.Request.Context()),
	})
}

// AddCharacter creates a character from the external data source.
func AddCharacter(c *gin.Context) {
	user := auth.CurrentUser(c)
	name := c.PostForm("name")

	created, err := character.Create(database.DB, chardata.GetSource(), user.ID, name)
	switch {
	case err == nil:
	case errors.Is(err, character.ErrNameRequired):
		redirect(c, addCharacterPath, flash.Danger, "Character name is required!")
		return
	case errors.Is(err, character.ErrDuplicateName):
		redirect(c, characterListPath, flash.Warning, "Character with this name already exists.")
		return
	case errors.Is(err, character.ErrDataNotFound):
		redirect(c, addCharacterPath, flash.Danger, "Character data could not be found. Please check the character name and try again.")
		return
	case errors.Is(err, character.ErrInvalidData):
		redirect(c, characterListPath, flash.Danger, "Invalid character data received. Please check the data source or try again later.")
		return
	case errors.Is(err, character.ErrDatabase):
		log.Printf("error saving character %q for user %d: %v", name, user.ID, err)
		// Taxonomy rows resolved before the failed insert are already stored.
		cache.Forget(c.Request.Context(), cache.TaxonomyPrefix)
		redirect(c, addCharacterPath, flash.Danger, "Error adding character: Database error occurred.")
		return
	default:
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	invalidate(c.Request.Context(), user.ID)
	log.Printf("user %d added character %d (%s)", user.ID, created.ID, created.Name)
	redirect(c, characterListPath, flash.Success, "Character added successfully!")
}

// ShowEditCharacter renders the edit form for one of the user's characters.
func ShowEditCharacter(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c)
		return
	}

	ch, err := character.GetOwned(database.DB, user.ID, id)
	if err != nil {
		characterLookupFailed(c, err)
		return
	}
	render(c, http.StatusOK, "edit_character.html", gin.H{
		"character":  ch,
		"taxonomies": taxonomyOptions(c.Request.Context()),
	})
}

// EditCharacter saves the edit form.
func EditCharacter(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c)
		return
	}

	var changes character.Changes
	if err := c.ShouldBind(&changes); err != nil {
		redirect(c, characterListPath, flash.Danger, "Error updating character: invalid form submission.")
		return
	}

	editPath := fmt.Sprintf("/user/edit_character/%d", id)
	_, err := character.Update(database.DB, user.ID, id, changes)
	switch {
	case err == nil:
	case errors.Is(err, character.ErrNotFound), errors.Is(err, character.ErrNotOwned):
		characterLookupFailed(c, err)
		return
	case errors.Is(err, character.ErrNameRequired):
		redirect(c, editPath, flash.Danger, "Character name is required.")
		return
	case errors.Is(err, character.ErrDuplicateName):
		redirect(c, editPath, flash.Warning, "Character with this name already exists.")
		return
	case errors.Is(err, character.ErrInvalidNumber):
		redirect(c, editPath, flash.Danger, "Error updating character: "+character.ErrInvalidNumber.Error()+".")
		return
	case errors.Is(err, character.ErrDatabase):
		log.Printf("error updating character %d for user %d: %v", id, user.ID, err)
		redirect(c, characterListPath, flash.Danger, "Error updating character: Database error occurred.")
		return
	default:
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	invalidate(c.Request.Context(), user.ID)
	redirect(c, characterListPath, flash.Success, "Character updated successfully!")
}

// DeleteCharacter removes one of the user's characters.
func DeleteCharacter(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		redirect(c, characterListPath, flash.Warning, "Character not found or does not belong to you.")
		return
	}

	err := character.Delete(database.DB, user.ID, id)
	switch {
	case err == nil:
	case errors.Is(err, character.ErrNotFound):
		redirect(c, characterListPath, flash.Warning, "Character not found or does not belong to you.")
		return
	case errors.Is(err, character.ErrDatabase):
		log.Printf("error deleting character %d for user %d: %v", id, user.ID, err)
		redirect(c, characterListPath, flash.Danger, "Error deleting character: A database error occurred.")
		return
	default:
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	cache.Forget(c.Request.Context(), cache.UserPrefix(user.ID))
	redirect(c, characterListPath, flash.Success, "Character deleted successfully!")
}

func characterLookupFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, character.ErrNotOwned):
		redirect(c, characterListPath, flash.Warning, "You are not authorized to edit this character.")
	case errors.Is(err, character.ErrNotFound):
		NotFound(c)
	default:
		log.Printf("character lookup: %v", err)
		redirect(c, characterListPath, flash.Danger, "Database error occurred.")
	}
}

// taxonomyOptions returns the dropdown options per kind, served from cache.
// A kind that fails to load is left empty.
func taxonomyOptions(ctx context.Context) map[string][]character.Option {
	out := make(map[string][]character.Option, len(character.Kinds))
	for _, kind := range character.Kinds {
		opts, err := cache.Remember(ctx, cache.TaxonomyKey(string(kind)), func() ([]character.Option, error) {
			return character.ListTaxonomy(database.DB, kind)
		})
		if err != nil {
			log.Printf("load %s options: %v", kind, err)
		}
		out[string(kind)] = opts
	}
	return out
}

// invalidate drops cached data a character write can make stale: the
// owner's summary and the taxonomy lists, which may have gained a row.
func invalidate(ctx context.Context, userID uint) {
	cache.Forget(ctx, cache.UserPrefix(userID))
	cache.Forget(ctx, cache.TaxonomyPrefix)
}
