package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mbenaiss/wati-mcp/models"
)

// pageParams reads pagination query parameters, falling back to the
// defaults when absent or non-positive.
func pageParams(c *gin.Context) (int, int) {
	pageSize := 20
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}

	pageNumber := 1
	if v := c.Query("page_number"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageNumber = n
		}
	}

	return pageSize, pageNumber
}

func (s *Server) handleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "ok",
	})
}

func (s *Server) handleGetContacts(c *gin.Context) {
	pageSize, pageNumber := pageParams(c)

	contacts, err := s.service.GetContacts(c.Request.Context(), pageSize, pageNumber, c.Query("channel"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get contacts: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    contacts,
	})
}

func (s *Server) handleSearchContacts(c *gin.Context) {
	contacts, err := s.service.SearchContacts(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to search contacts: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    contacts,
	})
}

func (s *Server) handleContactCount(c *gin.Context) {
	count, err := s.service.ContactCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get contact count: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    map[string]int{"count": count},
	})
}

func (s *Server) handleGetContact(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing target parameter",
		})
		return
	}

	contact, err := s.service.GetContact(c.Request.Context(), target)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Contact not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    contact,
	})
}

func (s *Server) handleAddContact(c *gin.Context) {
	var req AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.WhatsappNumber == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Whatsapp number and name are required",
		})
		return
	}

	contact, err := s.service.AddContact(c.Request.Context(), req.WhatsappNumber, req.Name, req.CustomParams)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to add contact: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    contact,
	})
}

func (s *Server) handleUpdateContacts(c *gin.Context) {
	var req UpdateContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if len(req.Contacts) == 0 {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Contacts are required",
		})
		return
	}

	updated, err := s.service.UpdateContacts(c.Request.Context(), req.Contacts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to update contacts: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    updated,
	})
}

func (s *Server) handleAssignContactTeams(c *gin.Context) {
	var req AssignTeamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" || len(req.Teams) == 0 {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target and teams are required",
		})
		return
	}

	success, err := s.service.AssignContactTeams(c.Request.Context(), req.Target, req.Teams)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to assign teams: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: success,
	})
}

func (s *Server) handleGetMessages(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing target parameter",
		})
		return
	}

	pageSize, pageNumber := pageParams(c)

	messages, err := s.service.GetMessages(c.Request.Context(), target, pageSize, pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get messages: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    messages,
	})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" || req.Text == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target and text are required",
		})
		return
	}

	success, message := s.service.SendMessage(c.Request.Context(), req.Target, req.Text)

	c.JSON(http.StatusOK, Response{
		Success: success,
		Message: message,
	})
}

func (s *Server) handleSendFile(c *gin.Context) {
	var req SendFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" || req.FilePath == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target and file path are required",
		})
		return
	}

	success, message := s.service.SendFile(c.Request.Context(), req.Target, req.FilePath, req.Caption)

	c.JSON(http.StatusOK, Response{
		Success: success,
		Message: message,
	})
}

func (s *Server) handleSendFileViaURL(c *gin.Context) {
	var req SendFileViaURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" || req.FileURL == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target and file URL are required",
		})
		return
	}

	success, message := s.service.SendFileViaURL(c.Request.Context(), req.Target, req.FileURL, req.Caption)

	c.JSON(http.StatusOK, Response{
		Success: success,
		Message: message,
	})
}

func (s *Server) handleSendInteractive(c *gin.Context) {
	var req SendInteractiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target is required",
		})
		return
	}

	switch req.InteractiveType {
	case "buttons":
		if len(req.Buttons) == 0 {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Message: "Buttons are required for type 'buttons'",
			})
			return
		}

		message := models.ButtonMessage{
			Body:    req.BodyText,
			Footer:  req.FooterText,
			Buttons: req.Buttons,
		}
		if req.HeaderText != "" {
			message.Header = &models.InteractiveHeader{Type: "text", Text: req.HeaderText}
		}

		success, msg := s.service.SendInteractiveButtons(c.Request.Context(), req.Target, message)
		c.JSON(http.StatusOK, Response{Success: success, Message: msg})
	case "list":
		if len(req.Sections) == 0 {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Message: "Sections are required for type 'list'",
			})
			return
		}

		message := models.ListMessage{
			Header:     req.HeaderText,
			Body:       req.BodyText,
			Footer:     req.FooterText,
			ButtonText: req.ButtonText,
			Sections:   req.Sections,
		}

		success, msg := s.service.SendInteractiveList(c.Request.Context(), req.Target, message)
		c.JSON(http.StatusOK, Response{Success: success, Message: msg})
	default:
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "interactive_type must be 'buttons' or 'list'",
		})
	}
}

func (s *Server) handleSendTemplate(c *gin.Context) {
	var req SendTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.TemplateName == "" || req.BroadcastName == "" || len(req.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Template name, broadcast name and recipients are required",
		})
		return
	}

	success, message := s.service.SendTemplate(c.Request.Context(), req.TemplateName, req.BroadcastName, req.Recipients, req.Channel)

	c.JSON(http.StatusOK, Response{
		Success: success,
		Message: message,
	})
}

func (s *Server) handleAssignOperator(c *gin.Context) {
	var req AssignOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target is required",
		})
		return
	}

	assignee := models.Bot()
	if req.AssigneeEmail != nil && *req.AssigneeEmail != "" {
		assignee = models.Agent(*req.AssigneeEmail)
	}

	success, err := s.service.AssignOperator(c.Request.Context(), req.Target, assignee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to assign operator: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: success,
	})
}

func (s *Server) handleUpdateConversationStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Target == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Target is required",
		})
		return
	}

	status := models.ConversationStatus(req.NewStatus)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Status must be open, solved, pending or block",
		})
		return
	}

	success, err := s.service.UpdateConversationStatus(c.Request.Context(), req.Target, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to update status: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: success,
	})
}

func (s *Server) handleDownloadMedia(c *gin.Context) {
	messageID := c.Query("message_id")
	if messageID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing message_id parameter",
		})
		return
	}

	filePath, err := s.service.DownloadMedia(c.Request.Context(), messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Failed to download media",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Media downloaded",
		Data:    map[string]string{"file_path": filePath},
	})
}

func (s *Server) handleListTemplates(c *gin.Context) {
	pageSize, pageNumber := pageParams(c)

	templates, err := s.service.ListTemplates(c.Request.Context(), pageSize, pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to list templates: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    templates,
	})
}

func (s *Server) handleGetTemplate(c *gin.Context) {
	templateID := c.Query("id")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing id parameter",
		})
		return
	}

	template, err := s.service.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Template not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    template,
	})
}

func (s *Server) handleListCampaigns(c *gin.Context) {
	pageSize, pageNumber := pageParams(c)

	campaigns, err := s.service.ListCampaigns(c.Request.Context(), pageSize, pageNumber, c.Query("channel"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to list campaigns: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    campaigns,
	})
}

func (s *Server) handleGetCampaign(c *gin.Context) {
	broadcastID := c.Query("id")
	if broadcastID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing id parameter",
		})
		return
	}

	campaign, err := s.service.GetCampaign(c.Request.Context(), broadcastID)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Campaign not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    campaign,
	})
}

func (s *Server) handleListChannels(c *gin.Context) {
	pageSize, pageNumber := pageParams(c)

	channels, err := s.service.ListChannels(c.Request.Context(), pageSize, pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to list channels: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    channels,
	})
}
