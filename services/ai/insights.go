package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/gemini"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

const fallbackAnswer = "An answer could not be generated for this question."

type Orchestrator struct {
	client *gemini.Client
}

var orchestrator *Orchestrator

func Init() {
	client, err := gemini.NewClientFromEnv()
	if err != nil {
		orchestrator = &Orchestrator{}
		return
	}
	orchestrator = &Orchestrator{client: client}
}

func Get() *Orchestrator {
	return orchestrator
}

func (o *Orchestrator) IsReady() bool {
	return o != nil && o.client != nil
}

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateInsights aggregates the client's recycling activity in the window,
// embeds every question in one prompt, and maps the response lines back to
// the questions positionally. Answers are returned, never persisted; the
// report wizard includes them later at generation time.
//
// Without a configured model every question gets the fallback answer so the
// wizard still works in unconfigured environments. A failing model call is
// surfaced as an error because the answers are the whole point of the call.
func (o *Orchestrator) GenerateInsights(ctx context.Context, db *gorm.DB, tenantID, clientID uint, start, end time.Time, questions []string) ([]Answer, error) {
	// The ownership check runs regardless of model availability so a foreign
	// client id is rejected the same way in every environment.
	var client models.Client
	if err := db.Where("id = ? AND tenant_id = ?", clientID, tenantID).First(&client).Error; err != nil {
		return nil, err
	}

	answers := make([]Answer, len(questions))
	for i, q := range questions {
		answers[i] = Answer{Question: q, Answer: fallbackAnswer}
	}
	if !o.IsReady() {
		return answers, nil
	}

	var recycledKg float64
	err := db.Model(&models.RecyclingProcess{}).
		Joins("JOIN waste_data ON waste_data.id = recycling_processes.waste_data_id").
		Joins("JOIN clients ON clients.id = waste_data.client_id AND clients.deleted_at IS NULL").
		Where("clients.tenant_id = ? AND waste_data.client_id = ?", tenantID, clientID).
		Where("recycling_processes.recycled_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(recycling_processes.quantity_recycled), 0)").
		Scan(&recycledKg).Error
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(client.CompanyName, recycledKg, start, end, questions)
	text, err := o.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	lines := splitAnswers(text)
	for i := range answers {
		if i < len(lines) && lines[i] != "" {
			answers[i].Answer = lines[i]
		}
	}
	return answers, nil
}

func buildPrompt(clientName string, recycledKg float64, start, end time.Time, questions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a sustainability analyst writing for a waste management report.\n")
	fmt.Fprintf(&b, "Client: %s. Period: %s to %s. Total recycled in period: %.2f kg.\n\n",
		clientName, start.Format("2006-01-02"), end.Format("2006-01-02"), recycledKg)
	b.WriteString("Answer each question below in one short paragraph. ")
	b.WriteString("Return exactly one answer per line, in order, with no numbering and no blank lines between answers.\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return b.String()
}

func splitAnswers(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
