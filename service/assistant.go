package service

import (
	"fmt"
	"strings"
)

// Assistant is the scripted claim assistant: a deterministic keyword router
// standing in for a language-model call. Rules are checked in order and the
// first match wins, so "it's broken and the screen is cracked" routes to the
// broken rule, not the screen rule. Callers depend on this being stateless
// and repeatable.
type Assistant struct{}

func NewAssistant() *Assistant {
	return &Assistant{}
}

type assistantRule struct {
	keywords []string
	response string
}

// Routing table, in priority order. Matching is case-insensitive substring.
var assistantRules = []assistantRule{
	{
		keywords: []string{"not working", "broken"},
		response: "I understand the product is not functioning properly. Can you provide more specific details about what happens when you try to use it? For example, does it not turn on, or is there a specific feature that's malfunctioning?",
	},
	{
		keywords: []string{"screen", "display"},
		response: "Screen issues are commonly covered under warranty. I recommend:\n\n1. Take photos showing the screen problem\n2. Note when the issue first appeared\n3. Check if it happens constantly or intermittently\n\nShould I help you gather this documentation for your claim?",
	},
	{
		keywords: []string{"battery", "charging"},
		response: "Battery and charging issues are typically covered. Here's what manufacturers usually need:\n\n• How long the battery lasts on full charge\n• Any error messages when charging\n• Whether you're using the original charger\n\nWould you like me to help you document these details?",
	},
	{
		keywords: []string{"yes", "okay", "sure"},
		response: "Great! I'll help you compile all the necessary information for your warranty claim. Based on what you've told me, here are the next steps:\n\n1. Take clear photos of the issue\n2. Gather your receipt and warranty documentation\n3. Note the product's serial number\n\nOnce you have these ready, I can help you draft the claim letter. Sound good?",
	},
}

const assistantFallback = "Thank you for that information. To strengthen your warranty claim, I recommend documenting the issue thoroughly with photos and a detailed timeline. Would you like me to guide you through the specific documentation needed for this type of claim?"

// Respond maps free-text user input to a canned guidance response
func (a *Assistant) Respond(userText string) string {
	lower := strings.ToLower(userText)

	for _, rule := range assistantRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.response
			}
		}
	}
	return assistantFallback
}

// Greeting seeds a new claim conversation with the opening assistant message
func (a *Assistant) Greeting(productName string) string {
	return fmt.Sprintf("Hi! I'm here to help you file a warranty claim for your %s. Please describe the issue you're experiencing with the product.", productName)
}
