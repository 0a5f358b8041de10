// Command-line stress test that seeds users, posts and comments through the
// API, then hammers the post-document endpoint concurrently and produces
// CSV + HTML latency reports.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"sync"
	"time"
)

const baseURL = "http://127.0.0.1:8080/api/v1"

var client = &http.Client{Timeout: 10 * time.Second}

// 简单的 tokenPair
type tokenPair struct {
	Access  string
	Refresh string
}

// renderResult 汇总一次文档渲染请求，方便折叠到报告内。
type renderResult struct {
	PostID     string
	StatusCode int
	LatencyMS  int64
	ErrMessage string
	Timestamp  time.Time
}

// ======================= 基本 HTTP helper =======================

// doPostJSON is a thin helper that serializes a JSON body and sends a POST request.
func doPostJSON(url string, body any, headers map[string]string) (int, []byte, error) {
	var buf []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = b
	}
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(buf))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

func doGet(url string) (int, []byte, time.Duration, error) {
	start := time.Now()
	resp, err := client.Get(url)
	elapsed := time.Since(start)
	if err != nil {
		return 0, nil, elapsed, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, elapsed, nil
}

// ======================= 注册 / 登录 / 发帖 Helpers =======================

// registerUser ensures the test account exists (idempotent).
func registerUser(name, email, phone, password string) error {
	body := map[string]string{
		"name":      name,
		"email":     email,
		"phone":     phone,
		"password":  password,
		"birthdate": "1990-01-01",
	}
	status, _, err := doPostJSON(baseURL+"/users/register", body, nil)
	if err != nil {
		return err
	}
	if status != 200 && status != 400 { // 400 表示已存在（可接受）
		return fmt.Errorf("register status %d", status)
	}
	return nil
}

// loginUser simulates one device login and returns the issued tokens.
func loginUser(email, password, device string) (tokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	headers := map[string]string{"X-Device": device}
	status, data, err := doPostJSON(baseURL+"/users/login", body, headers)
	if err != nil {
		return tokenPair{}, err
	}
	if status != 200 {
		return tokenPair{}, fmt.Errorf("login status %d body=%s", status, string(data))
	}
	var res map[string]string
	if err := json.Unmarshal(data, &res); err != nil {
		return tokenPair{}, err
	}
	return tokenPair{Access: res["access_token"], Refresh: res["refresh_token"]}, nil
}

// createPost publishes one post and returns its id.
func createPost(access, content string) (string, error) {
	headers := map[string]string{"Authorization": "Bearer " + access}
	status, data, err := doPostJSON(baseURL+"/posts", map[string]string{"content": content}, headers)
	if err != nil {
		return "", err
	}
	if status != 201 {
		return "", fmt.Errorf("create post status %d body=%s", status, string(data))
	}
	var res map[string]any
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}
	return fmt.Sprintf("%.0f", res["id"].(float64)), nil
}

// createComment posts a multipart comment so the rendered document has
// nested comment entries to assemble.
func createComment(access, postID, content string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("content", content)
	_ = w.Close()

	req, _ := http.NewRequest("POST", baseURL+"/posts/"+postID+"/comments", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 201 {
		return fmt.Errorf("create comment status %d", resp.StatusCode)
	}
	return nil
}

// ======================= 基础功能连通性测试 =======================

// endpointSmokeTests exercises the publish/render path with positive and negative cases.
func endpointSmokeTests() (string, string, error) {
	suffix := time.Now().UnixNano() % 1000000
	name := fmt.Sprintf("smk%d", suffix%1000000)
	email := fmt.Sprintf("smoke-%d@example.com", suffix)
	phone := fmt.Sprintf("090%08d", suffix)
	password := "SmokePwd123!"
	device := "smoke-device"

	if err := registerUser(name, email, phone, password); err != nil {
		return "", "", fmt.Errorf("register failed: %w", err)
	}
	tokens, err := loginUser(email, password, device)
	if err != nil {
		return "", "", fmt.Errorf("login failed: %w", err)
	}

	postID, err := createPost(tokens.Access, "stress seed post")
	if err != nil {
		return "", "", err
	}
	for i := 0; i < 3; i++ {
		if err := createComment(tokens.Access, postID, fmt.Sprintf("seed comment %d", i)); err != nil {
			return "", "", err
		}
	}

	// Over-length content must be rejected at creation.
	long := bytes.Repeat([]byte("x"), 141)
	if _, err := createPost(tokens.Access, string(long)); err == nil {
		return "", "", fmt.Errorf("over-length post unexpectedly accepted")
	}

	// The rendered document must carry the derived fields.
	status, data, _, err := doGet(baseURL + "/posts/" + postID)
	if err != nil || status != 200 {
		return "", "", fmt.Errorf("get post failed: status=%d err=%v", status, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", "", err
	}
	if doc["comments_count"].(float64) != 3 {
		return "", "", fmt.Errorf("comments_count = %v, want 3", doc["comments_count"])
	}
	if doc["post_create"] == nil {
		return "", "", fmt.Errorf("post_create missing from document")
	}

	log.Println("endpoint smoke tests passed: register/login/post/comment/render verified")
	return tokens.Access, postID, nil
}

// ======================= 并发渲染测试与报告生成 =======================

// concurrentRenderTest hammers the document endpoint and collects latencies.
func concurrentRenderTest(postID string, requests, maxConcurrent int, outCSV, outHTML string) error {
	jobs := make(chan int, requests)
	resCh := make(chan renderResult, requests)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for range jobs {
			status, _, elapsed, err := doGet(baseURL + "/posts/" + postID)
			r := renderResult{
				PostID:     postID,
				StatusCode: status,
				LatencyMS:  elapsed.Milliseconds(),
				Timestamp:  time.Now(),
			}
			if err != nil {
				r.ErrMessage = err.Error()
			} else if status != 200 {
				r.ErrMessage = fmt.Sprintf("unexpected status %d", status)
			}
			resCh <- r
		}
	}

	workers := maxConcurrent
	if workers < 1 {
		workers = 10
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for i := 0; i < requests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(resCh)

	// 写 CSV 报告
	csvFile, err := os.Create(outCSV)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	defer csvWriter.Flush()
	_ = csvWriter.Write([]string{"PostID", "StatusCode", "LatencyMS", "ErrMessage", "Timestamp"})

	var allResults []renderResult
	var failures int
	for r := range resCh {
		_ = csvWriter.Write([]string{r.PostID, fmt.Sprintf("%d", r.StatusCode), fmt.Sprintf("%d", r.LatencyMS), r.ErrMessage, r.Timestamp.Format(time.RFC3339)})
		if r.ErrMessage != "" {
			failures++
		}
		allResults = append(allResults, r)
	}
	csvWriter.Flush()

	if err := writeHTMLReport(outHTML, allResults); err != nil {
		log.Printf("write HTML report error: %v", err)
	}
	if failures > 0 {
		return fmt.Errorf("%d/%d render requests failed", failures, len(allResults))
	}
	return nil
}

// writeHTMLReport renders a basic table so failures are easy to eyeball.
func writeHTMLReport(path string, results []renderResult) error {
	const tpl = `
<!doctype html>
<html>
<head><meta charset="utf-8"><title>Render Test Report</title>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align:left }
th { background: #f4f4f4; }
.success { color: green; }
.fail { color: red; }
</style>
</head>
<body>
<h2>Render Test Report ({{ .GeneratedAt }})</h2>
<table>
<thead><tr><th>PostID</th><th>Status</th><th>Latency (ms)</th><th>Error</th><th>Timestamp</th></tr></thead>
<tbody>
{{ range .Rows }}
<tr>
<td>{{ .PostID }}</td>
<td>{{ .StatusCode }}</td>
<td>{{ .LatencyMS }}</td>
<td>{{ .ErrMessage }}</td>
<td>{{ .Timestamp }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>`

	data := struct {
		GeneratedAt string
		Rows        []renderResult
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rows:        results,
	}

	t, err := template.New("report").Parse(tpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// ======================= main =======================

func main() {
	requests := 200    // 渲染请求总数
	maxConcurrent := 5 // 最大并发 worker 数
	outCSV := "render_report.csv"
	outHTML := "render_report.html"

	_, postID, err := endpointSmokeTests()
	if err != nil {
		log.Fatalf("endpoint smoke tests failed: %v", err)
	}

	start := time.Now()
	if err := concurrentRenderTest(postID, requests, maxConcurrent, outCSV, outHTML); err != nil {
		log.Fatalf("concurrent render test failed: %v", err)
	}
	elapsed := time.Since(start)
	log.Printf("concurrent render test finished in %s, CSV=%s HTML=%s\n", elapsed.String(), outCSV, outHTML)
	fmt.Println("All render stress tests completed successfully!")
}
