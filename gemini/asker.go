package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docbot"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when Asker.Model is unset.
const DefaultModel = "gemini-2.5-flash"

// DefaultTopK is the number of retrieved segments given to the model.
const DefaultTopK = 3

// Ensure Asker implements docbot.Asker at compile time.
var _ docbot.Asker = (*Asker)(nil)

// Asker implements docbot.Asker by retrieving relevant segments and having
// Google Gemini answer from them.
type Asker struct {
	client   *genai.Client
	searcher docbot.Searcher

	// TopK is the number of segments retrieved per question.
	// Defaults to DefaultTopK.
	TopK int

	// Model names the Gemini model. Defaults to DefaultModel.
	Model string
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, searcher docbot.Searcher) *Asker {
	return &Asker{client: client, searcher: searcher}
}

// Ask answers a natural language question about the corpus.
// If retrieval finds nothing the model is not called and ENOTFOUND is
// returned.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", docbot.Errorf(docbot.EINVALID, "question required")
	}

	topK := a.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	results, err := a.searcher.Search(ctx, question, topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", docbot.Errorf(docbot.ENOTFOUND, "no relevant content found")
	}

	model := a.Model
	if model == "" {
		model = DefaultModel
	}

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(results, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docbot.Errorf(docbot.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert assistant for product documentation. Answer clearly, concisely and professionally, using only the documentation context provided. If the answer is not in the context, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt from retrieved segments and the
// question.
func BuildUserPrompt(results []docbot.ScoredResult, question string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A user asked: %q\n\n", question)
	sb.WriteString("Context:\n")
	sb.WriteString(docbot.FormatContext(results))
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
