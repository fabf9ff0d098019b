package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mbenaiss/wati-mcp/models"
	"github.com/mbenaiss/wati-mcp/wati"
)

type handler struct {
	client *wati.Client
}

// decodeArg converts a loosely-typed tool argument into a concrete type by
// round-tripping it through JSON.
func decodeArg(value interface{}, dst interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func textResult(value interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func sendResult(success bool, message string) (*mcp.CallToolResult, error) {
	return textResult(map[string]interface{}{
		"success": success,
		"message": message,
	})
}

func pageArgs(request mcp.CallToolRequest) (int, int) {
	pageSize := 20
	pageNumber := 1

	if ps, ok := request.Params.Arguments["page_size"].(float64); ok {
		pageSize = int(ps)
	}
	if pn, ok := request.Params.Arguments["page_number"].(float64); ok {
		pageNumber = int(pn)
	}

	return pageSize, pageNumber
}

func (h *handler) searchContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok {
		return nil, errors.New("query must be a string")
	}

	contacts, err := h.client.SearchContacts(ctx, query)
	if err != nil {
		return nil, err
	}

	return textResult(contacts)
}

func (h *handler) listContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageSize, pageNumber := pageArgs(request)

	contacts, err := h.client.GetContacts(ctx, pageSize, pageNumber, "")
	if err != nil {
		return nil, err
	}

	return textResult(contacts)
}

func (h *handler) getContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	contact, err := h.client.GetContact(ctx, target)
	if err != nil {
		return mcp.NewToolResultText("{}"), nil
	}

	return textResult(contact)
}

func (h *handler) addContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	whatsappNumber, ok := request.Params.Arguments["whatsapp_number"].(string)
	if !ok {
		return nil, errors.New("whatsapp_number must be a string")
	}

	name, ok := request.Params.Arguments["name"].(string)
	if !ok {
		return nil, errors.New("name must be a string")
	}

	var customParams []models.CustomParam
	if raw, ok := request.Params.Arguments["custom_params"].([]interface{}); ok {
		if err := decodeArg(raw, &customParams); err != nil {
			return nil, errors.New("custom_params must be a list of {name, value} pairs")
		}
	}

	contact, err := h.client.AddContact(ctx, whatsappNumber, name, customParams)
	if err != nil {
		return textResult(map[string]interface{}{
			"success": false,
			"message": "Failed to add contact",
		})
	}

	return textResult(map[string]interface{}{
		"success": true,
		"contact": contact,
	})
}

func (h *handler) updateContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.Params.Arguments["contacts"].([]interface{})
	if !ok {
		return nil, errors.New("contacts must be an array")
	}

	var updates []models.ContactUpdate
	if err := decodeArg(raw, &updates); err != nil {
		return nil, errors.New("contacts must be a list of {target, customParams} entries")
	}

	updated, err := h.client.UpdateContacts(ctx, updates)
	if err != nil {
		updated = nil
	}
	if updated == nil {
		updated = []models.Contact{}
	}

	return textResult(map[string]interface{}{
		"success":       len(updated) > 0,
		"updated_count": len(updated),
		"contacts":      updated,
	})
}

func (h *handler) getContactCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.client.ContactCount(ctx)
	if err != nil {
		return nil, err
	}

	return textResult(map[string]interface{}{"count": count})
}

func (h *handler) assignContactTeams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	raw, ok := request.Params.Arguments["teams"].([]interface{})
	if !ok {
		return nil, errors.New("teams must be an array")
	}

	var teams []string
	if err := decodeArg(raw, &teams); err != nil {
		return nil, errors.New("teams must be a list of team names")
	}

	success, err := h.client.AssignContactTeams(ctx, target, teams)
	if err != nil {
		success = false
	}

	return textResult(map[string]interface{}{"success": success})
}

func (h *handler) getMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	pageSize, pageNumber := pageArgs(request)

	messages, err := h.client.GetMessages(ctx, target, pageSize, pageNumber)
	if err != nil {
		return nil, err
	}

	return textResult(messages)
}

func (h *handler) sendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	text, ok := request.Params.Arguments["text"].(string)
	if !ok {
		return nil, errors.New("text must be a string")
	}

	if target == "" {
		return sendResult(false, "Target must be provided")
	}

	success, message := h.client.SendMessage(ctx, target, text)

	return sendResult(success, message)
}

func (h *handler) sendFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	filePath, ok := request.Params.Arguments["file_path"].(string)
	if !ok {
		return nil, errors.New("file_path must be a string")
	}

	caption := ""
	if c, ok := request.Params.Arguments["caption"].(string); ok {
		caption = c
	}

	success, message := h.client.SendFile(ctx, target, filePath, caption)

	return sendResult(success, message)
}

func (h *handler) sendFileViaURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	fileURL, ok := request.Params.Arguments["file_url"].(string)
	if !ok {
		return nil, errors.New("file_url must be a string")
	}

	caption := ""
	if c, ok := request.Params.Arguments["caption"].(string); ok {
		caption = c
	}

	success, message := h.client.SendFileViaURL(ctx, target, fileURL, caption)

	return sendResult(success, message)
}

func (h *handler) downloadMedia(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messageID, ok := request.Params.Arguments["message_id"].(string)
	if !ok {
		return nil, errors.New("message_id must be a string")
	}

	filePath, err := h.client.DownloadMedia(ctx, messageID)
	if err != nil || filePath == "" {
		return textResult(map[string]interface{}{
			"success": false,
			"message": "Failed to download media",
		})
	}

	return textResult(map[string]interface{}{
		"success":   true,
		"message":   "Media downloaded",
		"file_path": filePath,
	})
}

func (h *handler) sendInteractive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	interactiveType, ok := request.Params.Arguments["interactive_type"].(string)
	if !ok {
		return nil, errors.New("interactive_type must be a string")
	}

	bodyText, ok := request.Params.Arguments["body_text"].(string)
	if !ok {
		return nil, errors.New("body_text must be a string")
	}

	if target == "" {
		return sendResult(false, "Target must be provided")
	}
	if interactiveType != "buttons" && interactiveType != "list" {
		return sendResult(false, "type must be 'buttons' or 'list'")
	}

	headerText, _ := request.Params.Arguments["header_text"].(string)
	footerText, _ := request.Params.Arguments["footer_text"].(string)

	if interactiveType == "buttons" {
		rawButtons, ok := request.Params.Arguments["buttons"].([]interface{})
		if !ok || len(rawButtons) == 0 {
			return sendResult(false, "buttons required for type='buttons'")
		}

		var buttons []models.Button
		if err := decodeArg(rawButtons, &buttons); err != nil {
			return nil, errors.New("buttons must be a list of {text} entries")
		}

		message := models.ButtonMessage{
			Body:    bodyText,
			Footer:  footerText,
			Buttons: buttons,
		}
		if headerText != "" {
			message.Header = &models.InteractiveHeader{Type: "text", Text: headerText}
		}

		success, msg := h.client.SendInteractiveButtons(ctx, target, message)
		return sendResult(success, msg)
	}

	rawSections, ok := request.Params.Arguments["sections"].([]interface{})
	if !ok || len(rawSections) == 0 {
		return sendResult(false, "sections required for type='list'")
	}

	var sections []models.ListSection
	if err := decodeArg(rawSections, &sections); err != nil {
		return nil, errors.New("sections must be a list of {title, rows} entries")
	}

	buttonText, _ := request.Params.Arguments["button_text"].(string)

	message := models.ListMessage{
		Header:     headerText,
		Body:       bodyText,
		Footer:     footerText,
		ButtonText: buttonText,
		Sections:   sections,
	}

	success, msg := h.client.SendInteractiveList(ctx, target, message)
	return sendResult(success, msg)
}

func (h *handler) assignOperator(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	assignee := models.Bot()
	if email, ok := request.Params.Arguments["assignee_email"].(string); ok && email != "" {
		assignee = models.Agent(email)
	}

	success, err := h.client.AssignOperator(ctx, target, assignee)
	if err != nil {
		success = false
	}

	return textResult(map[string]interface{}{"success": success})
}

func (h *handler) updateConversationStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, ok := request.Params.Arguments["target"].(string)
	if !ok {
		return nil, errors.New("target must be a string")
	}

	newStatus, ok := request.Params.Arguments["new_status"].(string)
	if !ok {
		return nil, errors.New("new_status must be a string")
	}

	status := models.ConversationStatus(newStatus)
	if !status.Valid() {
		return sendResult(false, "status must be open, solved, pending, or block")
	}

	success, err := h.client.UpdateConversationStatus(ctx, target, status)
	if err != nil {
		success = false
	}

	return textResult(map[string]interface{}{"success": success})
}

func (h *handler) listTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageSize, pageNumber := pageArgs(request)

	templates, err := h.client.ListTemplates(ctx, pageSize, pageNumber)
	if err != nil {
		return nil, err
	}

	return textResult(templates)
}

func (h *handler) getTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, ok := request.Params.Arguments["template_id"].(string)
	if !ok {
		return nil, errors.New("template_id must be a string")
	}

	template, err := h.client.GetTemplate(ctx, templateID)
	if err != nil {
		return sendResult(false, "Template not found")
	}

	return textResult(template)
}

func (h *handler) sendTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateName, ok := request.Params.Arguments["template_name"].(string)
	if !ok {
		return nil, errors.New("template_name must be a string")
	}

	broadcastName, ok := request.Params.Arguments["broadcast_name"].(string)
	if !ok {
		return nil, errors.New("broadcast_name must be a string")
	}

	raw, ok := request.Params.Arguments["recipients"].([]interface{})
	if !ok {
		return nil, errors.New("recipients must be an array")
	}

	var recipients []models.TemplateRecipient
	if err := decodeArg(raw, &recipients); err != nil {
		return nil, errors.New("recipients must be a list of {phone_number, custom_params} entries")
	}

	channel, _ := request.Params.Arguments["channel"].(string)

	success, message := h.client.SendTemplate(ctx, templateName, broadcastName, recipients, channel)

	return sendResult(success, message)
}

func (h *handler) listCampaigns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageSize, pageNumber := pageArgs(request)

	campaigns, err := h.client.ListCampaigns(ctx, pageSize, pageNumber, "")
	if err != nil {
		return nil, err
	}

	return textResult(campaigns)
}

func (h *handler) getCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	broadcastID, ok := request.Params.Arguments["broadcast_id"].(string)
	if !ok {
		return nil, errors.New("broadcast_id must be a string")
	}

	campaign, err := h.client.GetCampaign(ctx, broadcastID)
	if err != nil {
		return sendResult(false, "Campaign not found")
	}

	return textResult(campaign)
}

func (h *handler) listChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageSize, pageNumber := pageArgs(request)

	channels, err := h.client.ListChannels(ctx, pageSize, pageNumber)
	if err != nil {
		return nil, err
	}

	return textResult(channels)
}
