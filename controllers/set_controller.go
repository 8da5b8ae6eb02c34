package controllers

import (
	"net/http"
	"time"
	"vocab-center/models"
	"vocab-center/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// SetController exposes set CRUD, membership management and the practice
// view. Sets have no ownership restriction; any authenticated user may touch
// any set.
type SetController struct {
	vocabService services.VocabService
	authFilter   restful.FilterFunction
}

// NewSetController creates a new SetController instance
func NewSetController(vocabService services.VocabService, authFilter restful.FilterFunction) *SetController {
	return &SetController{vocabService: vocabService, authFilter: authFilter}
}

// SetResponse defines the response structure of a set
type SetResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func mapModelToSetResponse(set *models.Set) SetResponse {
	if set == nil {
		return SetResponse{}
	}
	return SetResponse{
		ID:        set.ID,
		Name:      set.Name,
		Comment:   set.Comment,
		CreatedAt: set.CreatedAt,
		UpdatedAt: set.UpdatedAt,
	}
}

// RegisterRoutes sets up the set-related routes for a go-restful WebService.
func (ctl *SetController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/sets").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("").Filter(ctl.authFilter).To(ctl.createSetHandler).
		Doc("Create a new set").
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Reads(services.SetInput{}).
		Returns(http.StatusCreated, "Set created successfully", SetResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil))

	ws.Route(ws.GET("").Filter(ctl.authFilter).To(ctl.listSetsHandler).
		Doc("List all sets").
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Writes([]SetResponse{}).
		Returns(http.StatusOK, "Sets listed successfully", []SetResponse{}))

	ws.Route(ws.GET("/{set-id}").Filter(ctl.authFilter).To(ctl.getSetHandler).
		Doc("Get set by ID").
		Param(ws.PathParameter("set-id", "Identifier of the set").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Writes(SetResponse{}).
		Returns(http.StatusOK, "Set found", SetResponse{}).
		Returns(http.StatusNotFound, "Set not found", nil))

	ws.Route(ws.PUT("/{set-id}").Filter(ctl.authFilter).To(ctl.updateSetHandler).
		Doc("Update set by ID").
		Param(ws.PathParameter("set-id", "Identifier of the set to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Reads(services.SetInput{}).
		Writes(SetResponse{}).
		Returns(http.StatusOK, "Set updated successfully", SetResponse{}).
		Returns(http.StatusNotFound, "Set not found", nil))

	ws.Route(ws.DELETE("/{set-id}").Filter(ctl.authFilter).To(ctl.deleteSetHandler).
		Doc("Delete set by ID (cascades memberships, words remain)").
		Param(ws.PathParameter("set-id", "Identifier of the set to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Returns(http.StatusOK, "Set deleted successfully", nil).
		Returns(http.StatusNotFound, "Set not found", nil))

	ws.Route(ws.GET("/{set-id}/words").Filter(ctl.authFilter).To(ctl.wordsInSetHandler).
		Doc("List the words belonging to a set").
		Param(ws.PathParameter("set-id", "Identifier of the set").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Writes([]WordResponse{}).
		Returns(http.StatusOK, "Words in set", []WordResponse{}).
		Returns(http.StatusNotFound, "Set not found", nil))

	ws.Route(ws.GET("/{set-id}/practice").Filter(ctl.authFilter).To(ctl.practiceHandler).
		Doc("Words of a set in shuffled order for drilling").
		Param(ws.PathParameter("set-id", "Identifier of the set").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Writes([]WordResponse{}).
		Returns(http.StatusOK, "Shuffled words", []WordResponse{}).
		Returns(http.StatusNotFound, "Set not found", nil))

	ws.Route(ws.POST("/{set-id}/words/{word-id}").Filter(ctl.authFilter).To(ctl.addWordHandler).
		Doc("Add a word to a set").
		Param(ws.PathParameter("set-id", "Identifier of the set").DataType("integer")).
		Param(ws.PathParameter("word-id", "Identifier of the word").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Returns(http.StatusCreated, "Membership created", nil).
		Returns(http.StatusConflict, "Word already in set", nil).
		Returns(http.StatusUnprocessableEntity, "Word or set does not exist", nil))

	ws.Route(ws.DELETE("/{set-id}/words/{word-id}").Filter(ctl.authFilter).To(ctl.removeWordHandler).
		Doc("Remove a word from a set (no-op if absent)").
		Param(ws.PathParameter("set-id", "Identifier of the set").DataType("integer")).
		Param(ws.PathParameter("word-id", "Identifier of the word").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"sets"}).
		Returns(http.StatusOK, "Membership removed", nil))
}

func (ctl *SetController) createSetHandler(request *restful.Request, response *restful.Response) {
	input := new(services.SetInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if input.Name == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Name is required"}, restful.MIME_JSON)
		return
	}

	set, err := ctl.vocabService.CreateSet(input)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, mapModelToSetResponse(set), restful.MIME_JSON)
}

func (ctl *SetController) listSetsHandler(request *restful.Request, response *restful.Response) {
	sets, err := ctl.vocabService.ListSets()
	if err != nil {
		writeServiceError(response, err)
		return
	}

	responses := make([]SetResponse, len(sets))
	for i := range sets {
		responses[i] = mapModelToSetResponse(&sets[i])
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, responses, restful.MIME_JSON)
}

func (ctl *SetController) getSetHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}

	set, err := ctl.vocabService.GetSet(setID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToSetResponse(set), restful.MIME_JSON)
}

func (ctl *SetController) updateSetHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}

	input := new(services.SetInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	set, err := ctl.vocabService.UpdateSet(setID, input)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapModelToSetResponse(set), restful.MIME_JSON)
}

func (ctl *SetController) deleteSetHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}

	if err := ctl.vocabService.DeleteSet(setID); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusOK)
}

func (ctl *SetController) wordsInSetHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}

	words, err := ctl.vocabService.WordsInSet(setID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapWordsToResponses(words), restful.MIME_JSON)
}

func (ctl *SetController) practiceHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}

	words, err := ctl.vocabService.PracticeWords(setID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapWordsToResponses(words), restful.MIME_JSON)
}

func (ctl *SetController) addWordHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}
	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	if err := ctl.vocabService.AddWordToSet(wordID, setID); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusCreated)
}

func (ctl *SetController) removeWordHandler(request *restful.Request, response *restful.Response) {
	setID, ok := pathID(request, response, "set-id")
	if !ok {
		return
	}
	wordID, ok := pathID(request, response, "word-id")
	if !ok {
		return
	}

	if err := ctl.vocabService.RemoveWordFromSet(wordID, setID); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusOK)
}
