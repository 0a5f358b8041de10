package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"testing"
	"time"
)

func TestPostLifecycle(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	suffix := time.Now().UnixNano() % 1000000000
	name := fmt.Sprintf("it%d", suffix%10000000)
	email := fmt.Sprintf("it_%d@example.com", suffix)
	password := "Passw0rd!"
	device := "integration"

	// 1. Register
	registerReq := map[string]string{
		"name":      name,
		"email":     email,
		"password":  password,
		"phone":     fmt.Sprintf("090%08d", suffix%100000000),
		"birthdate": "1995-04-01",
	}
	if err := postJSON(client, baseURL+"/users/register", registerReq, nil, http.StatusOK); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 2. Login
	loginReq := map[string]string{"email": email, "password": password}
	headers := map[string]string{"X-Device": device}
	loginResp, err := postJSONWithResp(client, baseURL+"/users/login", loginReq, headers, http.StatusOK)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	access := loginResp["access_token"].(string)
	authed := map[string]string{"Authorization": "Bearer " + access}

	// 3. Create post
	created, err := postJSONWithResp(client, baseURL+"/posts", map[string]string{"content": "hello"}, authed, http.StatusCreated)
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	postID := fmt.Sprintf("%.0f", created["id"].(float64))

	// 4. Upload one image
	if err := uploadImage(client, baseURL+"/posts/"+postID+"/images", access); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// 5. Comment on the post
	comment := map[string]string{"content": "first!"}
	if err := postForm(client, baseURL+"/posts/"+postID+"/comments", comment, access, http.StatusCreated); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	// 6. Fetch the rendered document
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/posts/"+postID, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get post status=%d", resp.StatusCode)
	}
	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}

	if doc["content"] != "hello" {
		t.Errorf("content = %v, want hello", doc["content"])
	}
	if n := len(doc["images"].([]any)); n != 1 {
		t.Errorf("images length = %d, want 1", n)
	}
	if n := doc["comments_count"].(float64); n != 1 {
		t.Errorf("comments_count = %v, want 1", n)
	}
	user, ok := doc["user"].(map[string]any)
	if !ok {
		t.Fatalf("document has no user object")
	}
	if user["name"] != name {
		t.Errorf("user.name = %v, want %s", user["name"], name)
	}
	if _, found := user["phone"]; found {
		t.Errorf("user document leaked phone")
	}
	if doc["post_create"] == nil || doc["post_create"] == "" {
		t.Errorf("post_create missing")
	}
}

// uploadImage posts one tiny PNG-ish payload as multipart form data.
func uploadImage(client *http.Client, url, access string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="images"; filename="it.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte("\x89PNG fake body")); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, _ := http.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload status %d", resp.StatusCode)
	}
	return nil
}

// postForm submits url-encoded-free multipart fields without files.
func postForm(client *http.Client, url string, fields map[string]string, access string, expectedStatus int) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	req, _ := http.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != expectedStatus {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func postJSON(client *http.Client, url string, body interface{}, headers map[string]string, expectedStatus int) error {
	_, err := postJSONWithResp(client, url, body, headers, expectedStatus)
	return err
}

func postJSONWithResp(client *http.Client, url string, body interface{}, headers map[string]string, expectedStatus int) (map[string]any, error) {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != expectedStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}
