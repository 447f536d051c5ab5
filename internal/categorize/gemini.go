package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// CloudClassifier is the cloud model tier, backed by Gemini. It sends the
// transaction's merchant text plus context and expects a strict JSON object
// back. The API key comes from the environment (GEMINI_API_KEY or
// GOOGLE_API_KEY), which the genai client reads itself.
type CloudClassifier struct {
	model string
}

// NewCloudClassifier creates the cloud tier for the given model name.
func NewCloudClassifier(model string) *CloudClassifier {
	return &CloudClassifier{model: model}
}

// Configured reports whether an API key is present. The cascade checks this
// through Capabilities before attempting the tier.
func (c *CloudClassifier) Configured() bool {
	return os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
}

// Categorize asks the model for a category. Any transport or parse failure
// is returned as an error; the cascade treats it as "no result".
func (c *CloudClassifier) Categorize(ctx context.Context, tx *domain.ExtractedTransaction) (*domain.Categorization, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("categorize: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: c.buildPrompt(tx)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("categorize: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("categorize: empty response from model")
	}

	return parseModelVerdict(rawText)
}

func (c *CloudClassifier) buildPrompt(tx *domain.ExtractedTransaction) string {
	var b strings.Builder
	b.WriteString("You are a transaction categorizer for Indian personal finance.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Classify the transaction below into exactly one category.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a single JSON object.\n\n")
	b.WriteString("The object must have these fields:\n")
	b.WriteString("- \"category\": string, one of: ")
	names := make([]string, len(domain.Categories))
	for i, cat := range domain.Categories {
		names[i] = string(cat)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n- \"subcategory\": string or null\n")
	b.WriteString("- \"merchant_name\": string or null (a cleaned display name for the merchant)\n")
	b.WriteString("- \"confidence\": number between 0 and 1\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n\n")
	fmt.Fprintf(&b, "Transaction:\n- merchant: %s\n- raw description: %s\n- amount: %s %s\n- direction: %s\n- source: %s\n",
		tx.MerchantClean, tx.MerchantRaw, tx.Amount.String(), tx.Currency, tx.Direction, tx.SourceLabel)
	return b.String()
}

// parseModelVerdict turns the model's text into a Categorization, tolerating
// Markdown fences the model was told not to emit.
func parseModelVerdict(rawText string) (*domain.Categorization, error) {
	clean := cleanModelJSON(rawText)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("categorize: unmarshal model JSON: %w", err)
	}

	category, err := getStringField(obj, "category", true)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}
	subcategory, err := getStringField(obj, "subcategory", false)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}
	merchantName, err := getStringField(obj, "merchant_name", false)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}
	confidence, err := getFloat64Field(obj, "confidence", true)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	cat := domain.Category(strings.ToUpper(strings.TrimSpace(category)))
	if !domain.ValidCategory(cat) {
		return nil, fmt.Errorf("categorize: model returned unknown category %q", category)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &domain.Categorization{
		Category:     cat,
		Subcategory:  subcategory,
		MerchantName: merchantName,
		Confidence:   confidence,
		Source:       domain.SourceCloudModel,
	}, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

func getStringField(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("missing required field %q", key)
		}
		return "", nil
	}
	switch val := v.(type) {
	case string:
		if required && strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("required field %q is empty", key)
		}
		return val, nil
	default:
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
}

func getFloat64Field(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %q is not a number: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}
