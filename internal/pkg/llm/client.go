package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/kvxunz/vocabulary-analysis/config"
)

const (
	// maxGenerateAttempts 单词分析请求的重试预算
	maxGenerateAttempts = 3
	// generateRetryDelay 两次重试之间的固定退避间隔
	generateRetryDelay = time.Second
	// requestTimeout 单次外部请求超时
	requestTimeout = 60 * time.Second
)

var (
	// ErrRetriesExhausted 分析请求在重试预算内全部失败
	ErrRetriesExhausted = errors.New("analysis request failed after all retries")
	// ErrSynthesisFailed 语音合成失败（不重试）
	ErrSynthesisFailed = errors.New("speech synthesis failed")
)

const analysisSystemPrompt = "You are a helpful assistant that analyzes vocabulary words in Markdown format."

// Client 封装外部文本生成与语音合成服务
type Client struct {
	apiKey   string
	baseURL  string
	ttsModel string
	ttsVoice string

	chatModel  model.BaseChatModel
	httpClient *http.Client

	maxAttempts int
	retryDelay  time.Duration
}

// NewClient 创建客户端。未配置 API Key 时返回未就绪的客户端，
// 调用方通过 Configured 判断后拒绝请求，而不是在这里失败。
func NewClient(cfg *config.Config) (*Client, error) {
	c := &Client{
		apiKey:   cfg.LLM.APIKey,
		baseURL:  cfg.LLM.APIURL,
		ttsModel: cfg.LLM.TTSModel,
		ttsVoice: cfg.LLM.TTSVoice,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		maxAttempts: maxGenerateAttempts,
		retryDelay:  generateRetryDelay,
	}

	if cfg.LLM.APIKey == "" {
		klog.Errorf("OPENAI_API_KEY 未配置，分析与语音服务不可用")
		return c, nil
	}

	maxTokens := cfg.LLM.MaxTokens
	modelConfig := &openai.ChatModelConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: requestTimeout,
	}
	if cfg.LLM.APIURL != "" {
		modelConfig.BaseURL = cfg.LLM.APIURL
	}
	if maxTokens > 0 {
		modelConfig.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), modelConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 ChatModel 失败: %w", err)
	}
	c.chatModel = chatModel

	return c, nil
}

// Configured 检查生成服务凭证是否就绪
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.chatModel != nil
}

// Analyze 请求单词分析。失败时按固定间隔重试，
// 重试预算耗尽返回 ErrRetriesExhausted；成功结果经过 CleanAnalysis 清理。
func (c *Client) Analyze(ctx context.Context, word, template string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}

	messages := []*schema.Message{
		schema.SystemMessage(analysisSystemPrompt),
		schema.UserMessage(fmt.Sprintf("请分析单词 \"%s\"，按照以下结构输出（保持markdown格式）：\n\n%s", word, template)),
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.chatModel.Generate(ctx, messages)
		if err == nil {
			klog.V(6).Infof("单词分析完成: word=%s, attempt=%d, length=%d", word, attempt, len(resp.Content))
			return CleanAnalysis(resp.Content), nil
		}

		lastErr = err
		klog.Errorf("单词分析请求失败: word=%s, attempt=%d/%d, err=%v", word, attempt, c.maxAttempts, err)
		if attempt < c.maxAttempts {
			time.Sleep(c.retryDelay)
		}
	}

	return "", fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}
