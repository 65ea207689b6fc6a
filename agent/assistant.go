// Package agent is a thin AI assistant over the computed portfolio snapshot.
// It never touches the ledger: it only reads the digest it was started with.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemInstruction = `
You are a passive-income investment assistant. The user will hand you a
markdown digest of their portfolio: positions, values and monthly income.
Answer questions about diversification, income streams and dividend outlook
based on that digest. Be concise, quote figures from the digest, and say so
when a question needs data you do not have. Never invent holdings.`

// Assistant answers questions about the portfolio digest it was started with.
type Assistant struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
}

// New creates an assistant reading questions from r and answering on w.
func New(w io.Writer, r io.Reader) *Assistant {
	return &Assistant{w: w, r: bufio.NewReader(r)}
}

// Start creates the chat session and seeds it with the portfolio digest, so
// every answer is grounded in the user's actual holdings.
func (a *Assistant) Start(ctx context.Context, client *genai.Client, portfolio string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	_, err = a.Ask(ctx, "Here is my current portfolio:\n\n"+portfolio)
	return err
}

// Ask sends one question and returns the assistant's answer.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive session. Leading prompts are flushed first, then
// questions are read from the input. Type 'bye' (or Ctrl+D) to exit.
func (a *Assistant) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Welcome to pic assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
