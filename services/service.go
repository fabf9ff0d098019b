package services

import (
	"context"

	"github.com/mbenaiss/wati-mcp/metric"
	"github.com/mbenaiss/wati-mcp/models"
	"github.com/mbenaiss/wati-mcp/wati"
)

// Service exposes the WATI operations consumed by the bridge API.
type Service interface {
	GetContacts(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Contact, error)
	SearchContacts(ctx context.Context, query string) ([]models.Contact, error)
	GetContact(ctx context.Context, target string) (*models.Contact, error)
	AddContact(ctx context.Context, whatsappNumber, name string, customParams []models.CustomParam) (*models.Contact, error)
	UpdateContacts(ctx context.Context, updates []models.ContactUpdate) ([]models.Contact, error)
	ContactCount(ctx context.Context) (int, error)
	AssignContactTeams(ctx context.Context, target string, teams []string) (bool, error)
	GetMessages(ctx context.Context, target string, pageSize, pageNumber int) ([]models.Message, error)
	SendMessage(ctx context.Context, target, text string) (bool, string)
	SendFile(ctx context.Context, target, filePath, caption string) (bool, string)
	SendFileViaURL(ctx context.Context, target, fileURL, caption string) (bool, string)
	DownloadMedia(ctx context.Context, messageID string) (string, error)
	SendInteractiveButtons(ctx context.Context, target string, message models.ButtonMessage) (bool, string)
	SendInteractiveList(ctx context.Context, target string, message models.ListMessage) (bool, string)
	AssignOperator(ctx context.Context, target string, assignee models.Assignee) (bool, error)
	UpdateConversationStatus(ctx context.Context, target string, status models.ConversationStatus) (bool, error)
	ListTemplates(ctx context.Context, pageSize, pageNumber int) ([]models.Template, error)
	GetTemplate(ctx context.Context, templateID string) (*models.Template, error)
	SendTemplate(ctx context.Context, templateName, broadcastName string, recipients []models.TemplateRecipient, channel string) (bool, string)
	ListCampaigns(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, broadcastID string) (*models.Campaign, error)
	ListChannels(ctx context.Context, pageSize, pageNumber int) ([]models.Channel, error)
}

type service struct {
	client  *wati.Client
	metrics metric.UseCase
}

// NewService creates a new Service instance backed by the given WATI client.
// Every call is counted per operation and outcome.
func NewService(client *wati.Client, metrics metric.UseCase) Service {
	return &service{client: client, metrics: metrics}
}

func (s *service) track(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.SaveAPICall(metric.NewAPICall(operation, status))
}

func (s *service) trackSend(kind string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	s.metrics.SaveSendOutcome(metric.NewSendOutcome(kind, status))
}

func (s *service) GetContacts(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Contact, error) {
	contacts, err := s.client.GetContacts(ctx, pageSize, pageNumber, channel)
	s.track("get_contacts", err)
	return contacts, err
}

func (s *service) SearchContacts(ctx context.Context, query string) ([]models.Contact, error) {
	contacts, err := s.client.SearchContacts(ctx, query)
	s.track("search_contacts", err)
	return contacts, err
}

func (s *service) GetContact(ctx context.Context, target string) (*models.Contact, error) {
	contact, err := s.client.GetContact(ctx, target)
	s.track("get_contact", err)
	return contact, err
}

func (s *service) AddContact(ctx context.Context, whatsappNumber, name string, customParams []models.CustomParam) (*models.Contact, error) {
	contact, err := s.client.AddContact(ctx, whatsappNumber, name, customParams)
	s.track("add_contact", err)
	return contact, err
}

func (s *service) UpdateContacts(ctx context.Context, updates []models.ContactUpdate) ([]models.Contact, error) {
	updated, err := s.client.UpdateContacts(ctx, updates)
	s.track("update_contacts", err)
	return updated, err
}

func (s *service) ContactCount(ctx context.Context) (int, error) {
	count, err := s.client.ContactCount(ctx)
	s.track("contact_count", err)
	return count, err
}

func (s *service) AssignContactTeams(ctx context.Context, target string, teams []string) (bool, error) {
	success, err := s.client.AssignContactTeams(ctx, target, teams)
	s.track("assign_contact_teams", err)
	return success, err
}

func (s *service) GetMessages(ctx context.Context, target string, pageSize, pageNumber int) ([]models.Message, error) {
	messages, err := s.client.GetMessages(ctx, target, pageSize, pageNumber)
	s.track("get_messages", err)
	return messages, err
}

func (s *service) SendMessage(ctx context.Context, target, text string) (bool, string) {
	success, message := s.client.SendMessage(ctx, target, text)
	s.trackSend("text", success)
	return success, message
}

func (s *service) SendFile(ctx context.Context, target, filePath, caption string) (bool, string) {
	success, message := s.client.SendFile(ctx, target, filePath, caption)
	s.trackSend("file", success)
	return success, message
}

func (s *service) SendFileViaURL(ctx context.Context, target, fileURL, caption string) (bool, string) {
	success, message := s.client.SendFileViaURL(ctx, target, fileURL, caption)
	s.trackSend("file_url", success)
	return success, message
}

func (s *service) DownloadMedia(ctx context.Context, messageID string) (string, error) {
	path, err := s.client.DownloadMedia(ctx, messageID)
	s.track("download_media", err)
	return path, err
}

func (s *service) SendInteractiveButtons(ctx context.Context, target string, message models.ButtonMessage) (bool, string) {
	success, msg := s.client.SendInteractiveButtons(ctx, target, message)
	s.trackSend("interactive_buttons", success)
	return success, msg
}

func (s *service) SendInteractiveList(ctx context.Context, target string, message models.ListMessage) (bool, string) {
	success, msg := s.client.SendInteractiveList(ctx, target, message)
	s.trackSend("interactive_list", success)
	return success, msg
}

func (s *service) AssignOperator(ctx context.Context, target string, assignee models.Assignee) (bool, error) {
	success, err := s.client.AssignOperator(ctx, target, assignee)
	s.track("assign_operator", err)
	return success, err
}

func (s *service) UpdateConversationStatus(ctx context.Context, target string, status models.ConversationStatus) (bool, error) {
	success, err := s.client.UpdateConversationStatus(ctx, target, status)
	s.track("update_conversation_status", err)
	return success, err
}

func (s *service) ListTemplates(ctx context.Context, pageSize, pageNumber int) ([]models.Template, error) {
	templates, err := s.client.ListTemplates(ctx, pageSize, pageNumber)
	s.track("list_templates", err)
	return templates, err
}

func (s *service) GetTemplate(ctx context.Context, templateID string) (*models.Template, error) {
	template, err := s.client.GetTemplate(ctx, templateID)
	s.track("get_template", err)
	return template, err
}

func (s *service) SendTemplate(ctx context.Context, templateName, broadcastName string, recipients []models.TemplateRecipient, channel string) (bool, string) {
	success, message := s.client.SendTemplate(ctx, templateName, broadcastName, recipients, channel)
	s.trackSend("template", success)
	return success, message
}

func (s *service) ListCampaigns(ctx context.Context, pageSize, pageNumber int, channel string) ([]models.Campaign, error) {
	campaigns, err := s.client.ListCampaigns(ctx, pageSize, pageNumber, channel)
	s.track("list_campaigns", err)
	return campaigns, err
}

func (s *service) GetCampaign(ctx context.Context, broadcastID string) (*models.Campaign, error) {
	campaign, err := s.client.GetCampaign(ctx, broadcastID)
	s.track("get_campaign", err)
	return campaign, err
}

func (s *service) ListChannels(ctx context.Context, pageSize, pageNumber int) ([]models.Channel, error) {
	channels, err := s.client.ListChannels(ctx, pageSize, pageNumber)
	s.track("list_channels", err)
	return channels, err
}
