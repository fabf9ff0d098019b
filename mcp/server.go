package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mbenaiss/wati-mcp/wati"
)

// NewMCPServer creates a new MCP server exposing the WATI operations as tools
func NewMCPServer(client *wati.Client, name string, version string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
	)

	h := &handler{client: client}

	searchContactsTool := mcp.NewTool("search_contacts",
		mcp.WithDescription("Search WhatsApp contacts by name or phone number"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term for names or phone numbers"),
		),
	)

	listContactsTool := mcp.NewTool("list_contacts",
		mcp.WithDescription("List WhatsApp contacts with pagination"),
		mcp.WithNumber("page_size",
			mcp.Description("Number of contacts per page, max 100 (default 20)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number, 1-based (default 1)"),
		),
	)

	getContactTool := mcp.NewTool("get_contact",
		mcp.WithDescription("Retrieve detailed information about a specific contact"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Phone number with country code but without + (e.g. '85264318721') or contact ID"),
		),
	)

	addContactTool := mcp.NewTool("add_contact",
		mcp.WithDescription("Add a new WhatsApp contact"),
		mcp.WithString("whatsapp_number",
			mcp.Required(),
			mcp.Description("Phone number with country code but without + (e.g. '85264318721')"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Contact display name"),
		),
		mcp.WithArray("custom_params",
			mcp.Description("Optional list of {\"name\": \"key\", \"value\": \"val\"} pairs"),
		),
	)

	updateContactsTool := mcp.NewTool("update_contacts",
		mcp.WithDescription("Bulk-update custom parameters on existing contacts"),
		mcp.WithArray("contacts",
			mcp.Required(),
			mcp.Description("List of {\"target\": \"phone_or_id\", \"customParams\": [{\"name\": \"k\", \"value\": \"v\"}]}"),
		),
	)

	getContactCountTool := mcp.NewTool("get_contact_count",
		mcp.WithDescription("Retrieve the total number of WhatsApp contacts"),
	)

	assignContactTeamsTool := mcp.NewTool("assign_contact_teams",
		mcp.WithDescription("Assign a contact to one or more teams"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Phone number or contact ID"),
		),
		mcp.WithArray("teams",
			mcp.Required(),
			mcp.Description("List of team names (e.g. [\"Support\", \"Sales\"])"),
		),
	)

	getMessagesTool := mcp.NewTool("get_messages",
		mcp.WithDescription("Retrieve conversation messages for a contact or conversation"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Phone number (e.g. '85264318721') or conversation ID"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Messages per page, max 100 (default 20)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number, 1-based (default 1)"),
		),
	)

	sendMessageTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a WhatsApp text message to a contact"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Recipient phone number with country code but without + (e.g. '85264318721')"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text of the message to send"),
		),
	)

	sendFileTool := mcp.NewTool("send_file",
		mcp.WithDescription("Send a file (image, video, document, audio) via WhatsApp"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Recipient phone number with country code but without + (e.g. '85264318721')"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute path to the file or a URL"),
		),
		mcp.WithString("caption",
			mcp.Description("Optional caption for the file"),
		),
	)

	sendFileViaURLTool := mcp.NewTool("send_file_via_url",
		mcp.WithDescription("Send a file by URL without downloading it locally first"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Recipient phone number with country code but without + (e.g. '85264318721')"),
		),
		mcp.WithString("file_url",
			mcp.Required(),
			mcp.Description("Public URL of the file to send"),
		),
		mcp.WithString("caption",
			mcp.Description("Optional caption"),
		),
	)

	downloadMediaTool := mcp.NewTool("download_media",
		mcp.WithDescription("Download media from a WhatsApp message"),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("ID of the message containing the media"),
		),
	)

	sendInteractiveTool := mcp.NewTool("send_interactive",
		mcp.WithDescription("Send an interactive WhatsApp message with buttons or a list"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Recipient phone number with country code but without + (e.g. '85264318721')"),
		),
		mcp.WithString("interactive_type",
			mcp.Required(),
			mcp.Description("Either 'buttons' or 'list'"),
		),
		mcp.WithString("body_text",
			mcp.Required(),
			mcp.Description("Main message body text"),
		),
		mcp.WithArray("buttons",
			mcp.Description("For type 'buttons': list of {\"text\": \"Button label\"} (max 3)"),
		),
		mcp.WithString("header_text",
			mcp.Description("Optional header text"),
		),
		mcp.WithString("footer_text",
			mcp.Description("Optional footer text"),
		),
		mcp.WithString("button_text",
			mcp.Description("For type 'list': text shown on the list button"),
		),
		mcp.WithArray("sections",
			mcp.Description("For type 'list': list of {\"title\": \"...\", \"rows\": [{\"title\": \"...\", \"description\": \"...\"}]}"),
		),
	)

	assignOperatorTool := mcp.NewTool("assign_operator",
		mcp.WithDescription("Assign an operator to a WhatsApp conversation. Omit the email to assign to the bot"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Phone number or conversation ID"),
		),
		mcp.WithString("assignee_email",
			mcp.Description("Operator's email address (omit to assign to the bot)"),
		),
	)

	updateConversationStatusTool := mcp.NewTool("update_conversation_status",
		mcp.WithDescription("Update a conversation's status"),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Phone number or conversation ID"),
		),
		mcp.WithString("new_status",
			mcp.Required(),
			mcp.Description("One of 'open', 'solved', 'pending', 'block'"),
		),
	)

	listTemplatesTool := mcp.NewTool("list_templates",
		mcp.WithDescription("List WhatsApp message templates"),
		mcp.WithNumber("page_size",
			mcp.Description("Templates per page, max 100 (default 20)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number, 1-based (default 1)"),
		),
	)

	getTemplateTool := mcp.NewTool("get_template",
		mcp.WithDescription("Retrieve details of a specific message template"),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("The template's unique ID"),
		),
	)

	sendTemplateTool := mcp.NewTool("send_template",
		mcp.WithDescription("Send template messages to one or more recipients"),
		mcp.WithString("template_name",
			mcp.Required(),
			mcp.Description("Name of the approved template"),
		),
		mcp.WithString("broadcast_name",
			mcp.Required(),
			mcp.Description("Name for this broadcast batch"),
		),
		mcp.WithArray("recipients",
			mcp.Required(),
			mcp.Description("List of {\"phone_number\": \"...\", \"custom_params\": [{\"name\": \"k\", \"value\": \"v\"}]}"),
		),
		mcp.WithString("channel",
			mcp.Description("Optional channel name or phone (omit for the default channel)"),
		),
	)

	listCampaignsTool := mcp.NewTool("list_campaigns",
		mcp.WithDescription("List broadcast campaigns"),
		mcp.WithNumber("page_size",
			mcp.Description("Campaigns per page, max 100 (default 20)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number, 1-based (default 1)"),
		),
	)

	getCampaignTool := mcp.NewTool("get_campaign",
		mcp.WithDescription("Retrieve details and statistics for a broadcast campaign"),
		mcp.WithString("broadcast_id",
			mcp.Required(),
			mcp.Description("The campaign's unique ID"),
		),
	)

	listChannelsTool := mcp.NewTool("list_channels",
		mcp.WithDescription("List available WhatsApp channels"),
		mcp.WithNumber("page_size",
			mcp.Description("Channels per page, max 100 (default 20)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number, 1-based (default 1)"),
		),
	)

	s.AddTool(searchContactsTool, h.searchContacts)
	s.AddTool(listContactsTool, h.listContacts)
	s.AddTool(getContactTool, h.getContact)
	s.AddTool(addContactTool, h.addContact)
	s.AddTool(updateContactsTool, h.updateContacts)
	s.AddTool(getContactCountTool, h.getContactCount)
	s.AddTool(assignContactTeamsTool, h.assignContactTeams)
	s.AddTool(getMessagesTool, h.getMessages)
	s.AddTool(sendMessageTool, h.sendMessage)
	s.AddTool(sendFileTool, h.sendFile)
	s.AddTool(sendFileViaURLTool, h.sendFileViaURL)
	s.AddTool(downloadMediaTool, h.downloadMedia)
	s.AddTool(sendInteractiveTool, h.sendInteractive)
	s.AddTool(assignOperatorTool, h.assignOperator)
	s.AddTool(updateConversationStatusTool, h.updateConversationStatus)
	s.AddTool(listTemplatesTool, h.listTemplates)
	s.AddTool(getTemplateTool, h.getTemplate)
	s.AddTool(sendTemplateTool, h.sendTemplate)
	s.AddTool(listCampaignsTool, h.listCampaigns)
	s.AddTool(getCampaignTool, h.getCampaign)
	s.AddTool(listChannelsTool, h.listChannels)

	return s
}

// StartMCPServer starts the MCP server
func StartMCPServer(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
