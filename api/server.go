package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mbenaiss/wati-mcp/models"
	"github.com/mbenaiss/wati-mcp/services"
)

// Server represents the API handler
type Server struct {
	service services.Service
	router  *gin.Engine
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(service services.Service, port string) *Server {
	router := gin.Default()

	return &Server{
		service: service,
		router:  router,
		server: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
	}
}

// SendMessageRequest represents the request body for sending a text message
type SendMessageRequest struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// SendFileRequest represents the request body for sending a file attachment
type SendFileRequest struct {
	Target   string `json:"target"`
	FilePath string `json:"file_path"`
	Caption  string `json:"caption"`
}

// SendFileViaURLRequest represents the request body for sending a file by URL
type SendFileViaURLRequest struct {
	Target  string `json:"target"`
	FileURL string `json:"file_url"`
	Caption string `json:"caption"`
}

// SendInteractiveRequest represents the request body for sending an
// interactive buttons or list message
type SendInteractiveRequest struct {
	Target          string               `json:"target"`
	InteractiveType string               `json:"interactive_type"`
	BodyText        string               `json:"body_text"`
	Buttons         []models.Button      `json:"buttons"`
	HeaderText      string               `json:"header_text"`
	FooterText      string               `json:"footer_text"`
	ButtonText      string               `json:"button_text"`
	Sections        []models.ListSection `json:"sections"`
}

// SendTemplateRequest represents the request body for a template broadcast
type SendTemplateRequest struct {
	TemplateName  string                     `json:"template_name"`
	BroadcastName string                     `json:"broadcast_name"`
	Recipients    []models.TemplateRecipient `json:"recipients"`
	Channel       string                     `json:"channel"`
}

// AddContactRequest represents the request body for creating a contact
type AddContactRequest struct {
	WhatsappNumber string               `json:"whatsapp_number"`
	Name           string               `json:"name"`
	CustomParams   []models.CustomParam `json:"custom_params"`
}

// UpdateContactsRequest represents the request body for a bulk contact update
type UpdateContactsRequest struct {
	Contacts []models.ContactUpdate `json:"contacts"`
}

// AssignTeamsRequest represents the request body for a team assignment
type AssignTeamsRequest struct {
	Target string   `json:"target"`
	Teams  []string `json:"teams"`
}

// AssignOperatorRequest represents the request body for an operator
// assignment. A null or missing email assigns the conversation to the bot.
type AssignOperatorRequest struct {
	Target        string  `json:"target"`
	AssigneeEmail *string `json:"assignee_email"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Target    string `json:"target"`
	NewStatus string `json:"new_status"`
}

// Response represents a generic API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RegisterRoutes registers all API routes
func (s *Server) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/healthcheck", s.handleHealthcheck)

		api.GET("/contacts", s.handleGetContacts)
		api.GET("/contacts/search", s.handleSearchContacts)
		api.GET("/contacts/count", s.handleContactCount)
		api.GET("/contact", s.handleGetContact)
		api.POST("/contacts", s.handleAddContact)
		api.PUT("/contacts", s.handleUpdateContacts)
		api.PUT("/contacts/teams", s.handleAssignContactTeams)

		api.GET("/messages", s.handleGetMessages)
		api.POST("/send", s.handleSendMessage)
		api.POST("/send/file", s.handleSendFile)
		api.POST("/send/url", s.handleSendFileViaURL)
		api.POST("/send/interactive", s.handleSendInteractive)
		api.POST("/send/template", s.handleSendTemplate)
		api.PUT("/conversations/operator", s.handleAssignOperator)
		api.PUT("/conversations/status", s.handleUpdateConversationStatus)
		api.GET("/media", s.handleDownloadMedia)

		api.GET("/templates", s.handleListTemplates)
		api.GET("/template", s.handleGetTemplate)
		api.GET("/campaigns", s.handleListCampaigns)
		api.GET("/campaign", s.handleGetCampaign)
		api.GET("/channels", s.handleListChannels)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Start() error {
	s.registerRoutes(s.router)

	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
