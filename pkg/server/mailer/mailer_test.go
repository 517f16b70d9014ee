/* Copyright 2025 Orthodox Hymn Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mailer

import (
	"strings"
	"testing"
)

func TestAllTemplatesInitialized(t *testing.T) {
	tmpl := NewTemplates()

	emailTypes := []string{
		EmailTypeWelcome,
		EmailTypeFeedbackResponse,
	}

	for _, emailType := range emailTypes {
		t.Run(emailType, func(t *testing.T) {
			_, err := tmpl.get(emailType, EmailKindText)
			if err != nil {
				t.Errorf("template %s not initialized: %v", emailType, err)
			}
		})
	}
}

func TestWelcomeEmail(t *testing.T) {
	tmpl := NewTemplates()

	subject, body, err := tmpl.Execute(EmailTypeWelcome, EmailKindText, WelcomeTmplData{
		Username: "daniel",
		WebURL:   "http://localhost:3000",
	})
	if err != nil {
		t.Fatalf("executing template: %v", err)
	}

	if subject == "" {
		t.Error("subject should not be empty")
	}
	if !strings.Contains(body, "daniel") {
		t.Errorf("body should contain the username. Body: %s", body)
	}
	if !strings.Contains(body, "http://localhost:3000") {
		t.Errorf("body should contain the web url. Body: %s", body)
	}
}

func TestFeedbackResponseEmail(t *testing.T) {
	tmpl := NewTemplates()

	subject, body, err := tmpl.Execute(EmailTypeFeedbackResponse, EmailKindText, FeedbackResponseTmplData{
		Name:     "Sarah",
		Message:  "The hymn player skips on chapter changes",
		Response: "Thank you, this is fixed in version 2.1.0",
		WebURL:   "http://localhost:3000",
	})
	if err != nil {
		t.Fatalf("executing template: %v", err)
	}

	if subject == "" {
		t.Error("subject should not be empty")
	}
	if !strings.Contains(body, "Sarah") {
		t.Errorf("body should contain the recipient name. Body: %s", body)
	}
	if !strings.Contains(body, "The hymn player skips on chapter changes") {
		t.Errorf("body should contain the original message. Body: %s", body)
	}
	if !strings.Contains(body, "Thank you, this is fixed in version 2.1.0") {
		t.Errorf("body should contain the response. Body: %s", body)
	}

	t.Run("unsupported template", func(t *testing.T) {
		if _, _, err := tmpl.Execute("no_such_template", EmailKindText, nil); err == nil {
			t.Error("expected an error for an unsupported template")
		}
	})
}
