package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/gatortrader/gatortrader-api/db"
	"github.com/gatortrader/gatortrader-api/models"
	e "github.com/gatortrader/gatortrader-api/rest/errors"
	m "github.com/gatortrader/gatortrader-api/rest/models"
	"github.com/gatortrader/gatortrader-api/types"
)

const (
	searchPath = "search"
	recentPath = "recent"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()
	inputValidator.RegisterTagNameFunc(jsonFieldName)

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)

	_ = inputValidator.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("required", fe.Field())
		return translator
	})
}

// GetPost serves both the post details and the static post listings, as
// httprouter does not allow static segments next to a named parameter.
func (s *routeList) GetPost(w http.ResponseWriter, r *http.Request) {
	switch id := s.params(r, "id"); id {
	case searchPath:
		s.SearchPosts(w, r)
		return
	case recentPath:
		s.RecentPosts(w, r)
		return
	}

	id, err := s.idParam(r)
	if err != nil {
		RespondWithRequestError(w, err)
		return
	}

	post, err := s.repos.Posts.FetchByID(r.Context(), id, models.PostCategoryJoin)
	if err != nil {
		s.respondWithDbError(w, "unable to retrieve post", err)
		return
	}

	if post.IsZero() {
		RespondWithRequestError(w, e.NewNotFoundError(fmt.Sprintf("post %d not found", id)))
		return
	}

	RespondWithData(w, http.StatusOK, post)
}

func (s *routeList) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := models.PostSearch{
		Name:     query.Get("name"),
		Category: query.Get("category"),
		Page:     query.Get("page"),
		Sort:     query.Get("sort"),
		PageSize: s.pageSize,
	}

	request, err := search.QueryRequest()
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	posts, err := s.repos.Posts.FetchMany(r.Context(), request)
	if err != nil {
		s.respondWithDbError(w, "unable to search posts", err)
		return
	}

	RespondWithData(w, http.StatusOK, posts)
}

func (s *routeList) RecentPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repos.Posts.FetchMany(r.Context(), models.RecentPosts())
	if err != nil {
		s.respondWithDbError(w, "unable to retrieve recent posts", err)
		return
	}

	RespondWithData(w, http.StatusOK, posts)
}

func (s *routeList) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.repos.Categories.FetchBySQL(r.Context(), models.AllCategoriesQuery)
	if err != nil {
		s.respondWithDbError(w, "unable to retrieve categories", err)
		return
	}

	RespondWithData(w, http.StatusOK, categories)
}

func (s *routeList) GetCategoryPosts(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		RespondWithRequestError(w, err)
		return
	}

	page := 1
	if value := r.URL.Query().Get("page"); value != "" {
		if p, ok := types.StringToInt(value); ok {
			page = p
		}
	}

	posts, err := s.repos.Posts.FetchMany(r.Context(), models.PostsInCategory(id, page, s.pageSize))
	if err != nil {
		s.respondWithDbError(w, "unable to retrieve category posts", err)
		return
	}

	RespondWithData(w, http.StatusOK, posts)
}

func (s *routeList) AddUser(w http.ResponseWriter, r *http.Request) {
	var userAdd m.UserAdd
	if err := parseAndValidatePayload(&userAdd, r); err != nil {
		RespondWithError(w, fmt.Errorf("unable to parse payload: %w", err), http.StatusBadRequest)
		return
	}

	result := s.repos.Users.Insert(r.Context(), map[string]interface{}{
		"email": userAdd.Email,
		"name":  userAdd.Name,
	})

	if !result.Status {
		RespondWithRequestError(w, e.NewConflictError(result.Message))
		return
	}

	RespondWithData(w, http.StatusCreated, result)
}

func (s *routeList) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		RespondWithRequestError(w, err)
		return
	}

	var update m.FieldUpdate
	if err := parseAndValidatePayload(&update, r); err != nil {
		RespondWithError(w, fmt.Errorf("unable to parse payload: %w", err), http.StatusBadRequest)
		return
	}

	column := s.naming.ToSQLColumn(update.Field)
	if !models.UserUpdatableFields[column] {
		RespondWithRequestError(w, e.NewBadRequestError(fmt.Sprintf("field '%s' can not be updated", update.Field)))
		return
	}

	result, err := s.repos.Users.UpdateField(r.Context(), id, column, update.Value)
	if err != nil {
		s.respondWithDbError(w, "unable to update user", err)
		return
	}

	RespondWithData(w, http.StatusOK, result)
}

func (s *routeList) idParam(r *http.Request) (int64, error) {
	value := s.params(r, "id")
	id, ok := types.StringToInt(value)
	if !ok || id < 1 {
		return 0, e.NewBadRequestError(fmt.Sprintf("invalid id '%s'", value))
	}
	return int64(id), nil
}

func (s *routeList) respondWithDbError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, db.ErrInvalidRequest) {
		RespondWithError(w, fmt.Errorf("%s: %w", msg, err), http.StatusBadRequest)
		return
	}

	s.logger.Error(msg, "error", err)
	RespondWithRequestError(w, e.NewInternalError(msg))
}

// jsonFieldName reports validation errors using the payload field names.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func parseAndValidatePayload(obj interface{}, r *http.Request) error {
	if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
		return err
	}

	if err := inputValidator.Struct(obj); err != nil {
		return e.TranslateValidatorError(err, trans)
	}

	return nil
}
