package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"k8s.io/klog/v2"
)

// speechRequest OpenAI /audio/speech 请求体
type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize 调用语音合成服务，返回音频字节。
// 语音路径只尝试一次，失败返回 ErrSynthesisFailed。
func (c *Client) Synthesize(ctx context.Context, word string) ([]byte, error) {
	url := c.baseURL + "/audio/speech"
	klog.V(6).Infof("发送语音合成请求: url=%s, model=%s, voice=%s", url, c.ttsModel, c.ttsVoice)

	jsonData, err := json.Marshal(speechRequest{
		Model: c.ttsModel,
		Voice: c.ttsVoice,
		Input: word,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrSynthesisFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		klog.Errorf("语音合成失败: word=%s, status=%d, body=%s", word, resp.StatusCode, truncate(body, 200))
		return nil, fmt.Errorf("%w: status %d", ErrSynthesisFailed, resp.StatusCode)
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
