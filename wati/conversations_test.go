package wati

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbenaiss/wati-mcp/config"
	"github.com/mbenaiss/wati-mcp/models"
)

// tempUploads lists the leftover temp files a URL-based send could leave
// behind.
func tempUploads(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "wati-upload-*"))
	assert.NoError(t, err)
	return matches
}

func TestGetMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/555/messages", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message_list": [{"id": "m1", "text": "hello", "owner": true}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	messages, err := client.GetMessages(context.Background(), "555", 0, 0)

	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "hello", messages[0].Text)
	assert.True(t, messages[0].Owner)
}

func TestSendMessageSuccess(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/messages/text", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m1"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, message := client.SendMessage(context.Background(), "555", "hello")

	assert.True(t, success)
	assert.Contains(t, message, "m1")
	assert.Equal(t, "555", gotBody["target"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestSendMessageVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error": "bad number"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, message := client.SendMessage(context.Background(), "555", "hello")

	assert.False(t, success)
	assert.Equal(t, "bad number", message)
}

func TestSendFileLocalPath(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "doc.pdf")
	assert.NoError(t, os.WriteFile(filePath, []byte("pdf-bytes"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/messages/file", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "555", r.FormValue("target"))
		assert.Equal(t, "the report", r.FormValue("caption"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m7"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, message := client.SendFile(context.Background(), "555", filePath, "the report")

	assert.True(t, success)
	assert.Contains(t, message, "m7")
}

func TestSendFileRemoteURLCleansUpTempFile(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer media.Close()

	var gotFile []byte
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		gotFile, _ = io.ReadAll(file)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m1"}}`))
	}))
	defer api.Close()

	before := tempUploads(t)

	client := newTestClient(api.URL)

	success, _ := client.SendFile(context.Background(), "555", media.URL+"/photo.png", "")

	assert.True(t, success)
	assert.Equal(t, "png-bytes", string(gotFile))
	assert.Equal(t, before, tempUploads(t))
}

func TestSendFileRemoteURLCleansUpOnUploadFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer media.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer api.Close()

	before := tempUploads(t)

	client := newTestClient(api.URL)

	success, message := client.SendFile(context.Background(), "555", media.URL+"/photo.png", "")

	assert.False(t, success)
	assert.Contains(t, message, "Error sending file")
	assert.Equal(t, before, tempUploads(t))
}

func TestSendFileRemoteURLFetchFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer media.Close()

	before := tempUploads(t)

	client := newTestClient("https://example.invalid")

	success, message := client.SendFile(context.Background(), "555", media.URL+"/gone.png", "")

	assert.False(t, success)
	assert.Contains(t, message, "Error sending file")
	assert.Equal(t, before, tempUploads(t))
}

func TestSendFileViaURL(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/messages/fileViaUrl", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m1"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, _ := client.SendFileViaURL(context.Background(), "555", "https://cdn.example.com/a.png", "look")

	assert.True(t, success)
	assert.Equal(t, "https://cdn.example.com/a.png", gotBody["file_url"])
	assert.Equal(t, "look", gotBody["caption"])
}

func TestDownloadMediaFilenameFromHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/messages/file/m1", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pdf-bytes"))
	}))
	defer server.Close()

	client := NewClient(config.Config{BaseURL: server.URL, AuthToken: "test-token", DownloadDir: t.TempDir()})

	localPath, err := client.DownloadMedia(context.Background(), "m1")

	assert.NoError(t, err)
	assert.Equal(t, "invoice.pdf", filepath.Base(localPath))

	content, err := os.ReadFile(localPath)
	assert.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestDownloadMediaFilenameFallsBackToMessageID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("media-bytes"))
	}))
	defer server.Close()

	client := NewClient(config.Config{BaseURL: server.URL, AuthToken: "test-token", DownloadDir: t.TempDir()})

	localPath, err := client.DownloadMedia(context.Background(), "m1")

	assert.NoError(t, err)
	assert.Equal(t, "m1", filepath.Base(localPath))
}

func TestDownloadMediaNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	downloadDir := t.TempDir()
	client := NewClient(config.Config{BaseURL: server.URL, AuthToken: "test-token", DownloadDir: downloadDir})

	localPath, err := client.DownloadMedia(context.Background(), "m1")

	assert.Error(t, err)
	assert.Empty(t, localPath)

	entries, readErr := os.ReadDir(downloadDir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestMediaFilename(t *testing.T) {
	assert.Equal(t, "invoice.pdf", mediaFilename(`attachment; filename="invoice.pdf"`, "m1"))
	assert.Equal(t, "b.png", mediaFilename(`attachment; filename="../a/b.png"`, "m1"))
	assert.Equal(t, "m1", mediaFilename("", "m1"))
	assert.Equal(t, "m1", mediaFilename("garbage;;;", "m1"))
}

func TestSendInteractiveButtons(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/messages/interactive", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m1"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, _ := client.SendInteractiveButtons(context.Background(), "555", models.ButtonMessage{
		Body:    "Pick one",
		Buttons: []models.Button{{Text: "Yes"}, {Text: "No"}},
	})

	assert.True(t, success)
	assert.Equal(t, "buttons", gotBody["type"])
	assert.NotNil(t, gotBody["button_message"])
}

func TestSendInteractiveList(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": {"id": "m1"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, _ := client.SendInteractiveList(context.Background(), "555", models.ListMessage{
		Body:       "Choose a plan",
		ButtonText: "Plans",
		Sections: []models.ListSection{
			{Title: "Paid", Rows: []models.ListRow{{Title: "Pro", Description: "All features"}}},
		},
	})

	assert.True(t, success)
	assert.Equal(t, "list", gotBody["type"])
	assert.NotNil(t, gotBody["list_message"])
}

func TestAssignOperatorAgent(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/555/operator", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, err := client.AssignOperator(context.Background(), "555", models.Agent("ops@example.com"))

	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "ops@example.com", gotBody["assignee_email"])
}

func TestAssignOperatorBotSendsNull(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, err := client.AssignOperator(context.Background(), "555", models.Bot())

	assert.NoError(t, err)
	assert.True(t, success)
	assert.Contains(t, gotBody, "assignee_email")
	assert.Nil(t, gotBody["assignee_email"])
}

func TestUpdateConversationStatus(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v3/conversations/555/status", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, err := client.UpdateConversationStatus(context.Background(), "555", models.StatusSolved)

	assert.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "solved", gotBody["new_status"])
}

func TestUpdateConversationStatusRejectsInvalidBeforeDispatch(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	success, err := client.UpdateConversationStatus(context.Background(), "555", models.ConversationStatus("closed"))

	assert.Error(t, err)
	assert.False(t, success)
	assert.Contains(t, err.Error(), "invalid conversation status")
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}
