package controllers

import (
	"net/http"
	"strconv"
	"time"
	"vocab-center/auth"
	"vocab-center/models"
	"vocab-center/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// WordController exposes the word CRUD and search routes. All of them sit
// behind the session filter.
type WordController struct {
	vocabService services.VocabService
	authFilter   restful.FilterFunction
}

// NewWordController creates a new WordController instance
func NewWordController(vocabService services.VocabService, authFilter restful.FilterFunction) *WordController {
	return &WordController{vocabService: vocabService, authFilter: authFilter}
}

// WordResponse defines the response structure of a word
type WordResponse struct {
	ID             uint      `json:"id"`
	Hanzi          string    `json:"hanzi"`
	Pinyin         string    `json:"pinyin"`
	Translation    string    `json:"translation"`
	Comment        string    `json:"comment"`
	WordClassID    uint      `json:"word_class_id"`
	CreatedID      uint      `json:"created_id"`
	LastModifiedID uint      `json:"last_modified_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PaginatedWordsResponse struct {
	Words    []WordResponse `json:"words"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type WordClassResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func mapModelToWordResponse(word *models.Word) WordResponse {
	if word == nil {
		return WordResponse{}
	}
	return WordResponse{
		ID:             word.ID,
		Hanzi:          word.Hanzi,
		Pinyin:         word.Pinyin,
		Translation:    word.Translation,
		Comment:        word.Comment,
		WordClassID:    word.WordClassID,
		CreatedID:      word.CreatedID,
		LastModifiedID: word.LastModifiedID,
		CreatedAt:      word.CreatedAt,
		UpdatedAt:      word.UpdatedAt,
	}
}

func mapWordsToResponses(words []models.Word) []WordResponse {
	responses := make([]WordResponse, len(words))
	for i := range words {
		responses[i] = mapModelToWordResponse(&words[i])
	}
	return responses
}

// RegisterRoutes sets up the word-related routes for a go-restful WebService.
func (ctl *WordController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/words").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("").Filter(ctl.authFilter).To(ctl.createWordHandler).
		Doc("Create a new word").
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Reads(services.CreateWordInput{}).
		Returns(http.StatusCreated, "Word created successfully", WordResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil))

	ws.Route(ws.GET("").Filter(ctl.authFilter).To(ctl.listWordsHandler).
		Doc("List words with pagination").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("page_size", "Words per page (default 20)").DataType("integer").DefaultValue("20")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Writes(PaginatedWordsResponse{}).
		Returns(http.StatusOK, "Words listed successfully", PaginatedWordsResponse{}))

	ws.Route(ws.GET("/search").Filter(ctl.authFilter).To(ctl.searchWordsHandler).
		Doc("Search words by substring across hanzi, pinyin and translation").
		Param(ws.QueryParameter("q", "Substring pattern").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Writes([]WordResponse{}).
		Returns(http.StatusOK, "Matching words", []WordResponse{}))

	ws.Route(ws.GET("/classes").Filter(ctl.authFilter).To(ctl.listWordClassesHandler).
		Doc("List the word class reference data").
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Writes([]WordClassResponse{}).
		Returns(http.StatusOK, "Word classes", []WordClassResponse{}))

	ws.Route(ws.GET("/{word-id}").Filter(ctl.authFilter).To(ctl.getWordHandler).
		Doc("Get word by ID").
		Param(ws.PathParameter("word-id", "Identifier of the word").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Writes(WordResponse{}).
		Returns(http.StatusOK, "Word found", WordResponse{}).
		Returns(http.StatusNotFound, "Word not found", nil))

	ws.Route(ws.GET("/{word-id}/sets").Filter(ctl.authFilter).To(ctl.setsForWordHandler).
		Doc("List the ids of the sets a word belongs to").
		Param(ws.PathParameter("word-id", "Identifier of the word").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Writes([]uint{}).
		Returns(http.StatusOK, "Set ids", []uint{}).
		Returns(http.StatusNotFound, "Word not found", nil))

	ws.Route(ws.PUT("/{word-id}").Filter(ctl.authFilter).To(ctl.updateWordHandler).
		Doc("Update word by ID (any authenticated user)").
		Param(ws.PathParameter("word-id", "Identifier of the word to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Reads(services.UpdateWordInput{}).
		Writes(WordResponse{}).
		Returns(http.StatusOK, "Word updated successfully", WordResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body or word ID", nil).
		Returns(http.StatusNotFound, "Word not found", nil))

	ws.Route(ws.DELETE("/{word-id}").Filter(ctl.authFilter).To(ctl.deleteWordHandler).
		Doc("Delete word by ID (creator only, cascades memberships)").
		Param(ws.PathParameter("word-id", "Identifier of the word to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"words"}).
		Returns(http.StatusOK, "Word deleted successfully", nil).
		Returns(http.StatusForbidden, "Only the creator may delete a word", nil).
		Returns(http.StatusNotFound, "Word not found", nil))
}

func (ctl *WordController) createWordHandler(request *restful.Request, response *restful.Response) {
	user, ok := auth.AuthenticatedUser(request)
	if !ok {
		_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "Unauthorized: Cannot identify requesting user"}, restful.MIME_JSON)
		return
	}

	input := new(services.CreateWordInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if input.Hanzi == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Hanzi is required"}, restful.MIME_JSON)
		return
	}

	word, err := ctl.vocabService.CreateWord(input, user.ID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, mapModelToWordResponse(word), restful.MIME_JSON)
}

func (ctl *WordController) listWordsHandler(request *restful.Request, response *restful.Response) {
	page, err := strconv.Atoi(request.QueryParameter("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(request.QueryParameter("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}

	words, total, err := ctl.vocabService.ListWords(page, pageSize)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	respData := PaginatedWordsResponse{
		Words:    mapWordsToResponses(words),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, respData, restful.MIME_JSON)
}

func (ctl *WordController) searchWordsHandler(request *restful.Request, response *restful.Response) {
	pattern := request.QueryParameter("q")

	words, err := ctl.vocabService.Search(pattern)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapWordsToResponses(words), restful.MIME_JSON)
}

func (ctl *WordController) listWordClassesHandler(request *restful.Request, response *restful.Response) {
	classes, err := ctl.vocabService.ListWordClasses()
	if err != nil {
		writeServiceError(response, err)
		return
	}

	responses := make([]WordClassResponse, len(classes))
	for i, class := range classes {
		responses[i] = WordClassResponse{ID: class.ID, Name: class.Name}
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, responses, restful.MIME_JSON)
}

func (ctl *WordController) getWordHandler(request *restful.Request, response *restful.Response) {
	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	word, err := ctl.vocabService.GetWord(wordID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToWordResponse(word), restful.MIME_JSON)
}

func (ctl *WordController) setsForWordHandler(request *restful.Request, response *restful.Response) {
	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	setIDs, err := ctl.vocabService.SetsForWord(wordID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	if setIDs == nil {
		setIDs = []uint{}
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, setIDs, restful.MIME_JSON)
}

func (ctl *WordController) updateWordHandler(request *restful.Request, response *restful.Response) {
	user, ok := auth.AuthenticatedUser(request)
	if !ok {
		_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "Unauthorized: Cannot identify requesting user"}, restful.MIME_JSON)
		return
	}

	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	input := new(services.UpdateWordInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	word, err := ctl.vocabService.UpdateWord(wordID, input, user.ID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToWordResponse(word), restful.MIME_JSON)
}

// deleteWordHandler maps a permission denial to 403 and stops there; the
// happy-path response is never written on denial.
func (ctl *WordController) deleteWordHandler(request *restful.Request, response *restful.Response) {
	user, ok := auth.AuthenticatedUser(request)
	if !ok {
		_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "Unauthorized: Cannot identify requesting user"}, restful.MIME_JSON)
		return
	}

	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	if err := ctl.vocabService.DeleteWord(wordID, user.ID); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusOK)
}

// pathID parses a numeric path parameter, writing the 400 itself on failure.
func pathID(request *restful.Request, response *restful.Response, name string) (uint, bool) {
	raw := request.PathParameter(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid " + name + " format"}, restful.MIME_JSON)
		return 0, false
	}
	return uint(id), true
}
