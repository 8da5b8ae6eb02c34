package controllers

import (
	"net/http"
	"time"
	"vocab-center/auth"
	"vocab-center/models"
	"vocab-center/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// UserController owns the anonymous entry point and the register/login/logout
// routes.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController instance
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// UserResponse defines the response structure of user information
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the session token handed out on register/login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type loginCredentials struct {
	Username string `json:"username" description:"Username for login"`
	Password string `json:"password" description:"Password for login"`
}

func mapModelToUserResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterRoutes sets up the identity routes on the root WebService.
func (ctl *UserController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	// Anonymous entry point; unauthenticated requests get redirected here.
	ws.Route(ws.GET("/").To(ctl.startHandler).
		Doc("Anonymous entry point").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Returns(http.StatusOK, "OK", nil))

	ws.Route(ws.POST("/register").To(ctl.registerHandler).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.RegisterInput{}).
		Returns(http.StatusCreated, "User created successfully", AuthResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Username already exists", nil))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Log in with username and password").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(loginCredentials{}).
		Returns(http.StatusOK, "Logged in", AuthResponse{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", nil))

	ws.Route(ws.GET("/logout").To(ctl.logoutHandler).
		Doc("Log out and return to the entry point").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Returns(http.StatusFound, "Redirected", nil))
}

func (ctl *UserController) startHandler(request *restful.Request, response *restful.Response) {
	_ = response.WriteHeaderAndJson(http.StatusOK, map[string]string{"message": "Welcome to vocab-center. Register or log in to continue."}, restful.MIME_JSON)
}

// registerHandler creates the user and immediately establishes a session for
// it (auto-login after registration).
func (ctl *UserController) registerHandler(request *restful.Request, response *restful.Response) {
	input := new(services.RegisterInput)
	if err := request.ReadEntity(input); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if input.Username == "" || input.Password == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Username and password are required"}, restful.MIME_JSON)
		return
	}

	user, err := ctl.userService.Register(input)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusInternalServerError, map[string]string{"message": "Could not generate token"}, restful.MIME_JSON)
		return
	}

	setSessionCookie(response, token)
	_ = response.WriteHeaderAndJson(http.StatusCreated, AuthResponse{Token: token, User: mapModelToUserResponse(user)}, restful.MIME_JSON)
}

func (ctl *UserController) loginHandler(request *restful.Request, response *restful.Response) {
	creds := new(loginCredentials)
	if err := request.ReadEntity(creds); err != nil {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()}, restful.MIME_JSON)
		return
	}

	if creds.Username == "" || creds.Password == "" {
		_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": "Username and password are required"}, restful.MIME_JSON)
		return
	}

	user, err := ctl.userService.Authenticate(creds.Username, creds.Password)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusInternalServerError, map[string]string{"message": "Could not generate token"}, restful.MIME_JSON)
		return
	}

	setSessionCookie(response, token)
	_ = response.WriteHeaderAndJson(http.StatusOK, AuthResponse{Token: token, User: mapModelToUserResponse(user)}, restful.MIME_JSON)
}

// logoutHandler clears the session cookie and sends the client back to the
// entry point. Tokens already handed out simply expire.
func (ctl *UserController) logoutHandler(request *restful.Request, response *restful.Response) {
	http.SetCookie(response.ResponseWriter, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(response, request.Request, "/", http.StatusFound)
}

func setSessionCookie(response *restful.Response, token string) {
	http.SetCookie(response.ResponseWriter, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
