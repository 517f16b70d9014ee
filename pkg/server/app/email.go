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

package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/mailer"
	"github.com/pkg/errors"
)

func getDomainFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing url")
	}

	host := u.Hostname()
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host, nil
	}
	domain := parts[len(parts)-2] + "." + parts[len(parts)-1]

	return domain, nil
}

func (a *App) getNoreplySender() (string, error) {
	domain, err := getDomainFromURL(a.WebURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing web url")
	}

	return fmt.Sprintf("noreply@%s", domain), nil
}

// SendWelcomeEmail sends a welcome email to a newly registered user
func (a *App) SendWelcomeEmail(email, username string) error {
	from, err := a.getNoreplySender()
	if err != nil {
		return errors.Wrap(err, "getting the sender email")
	}

	data := mailer.WelcomeTmplData{
		Username: username,
		WebURL:   a.WebURL,
	}

	if err := a.EmailBackend.SendEmail(mailer.EmailTypeWelcome, from, []string{email}, data); err != nil {
		return errors.Wrapf(err, "sending welcome email for %s", email)
	}

	return nil
}

// SendFeedbackResponseEmail notifies a feedback submitter that the team
// has responded
func (a *App) SendFeedbackResponseEmail(feedback database.Feedback, response string) error {
	from, err := a.getNoreplySender()
	if err != nil {
		return errors.Wrap(err, "getting the sender email")
	}

	data := mailer.FeedbackResponseTmplData{
		Name:     feedback.Name,
		Message:  feedback.Message,
		Response: response,
		WebURL:   a.WebURL,
	}

	if err := a.EmailBackend.SendEmail(mailer.EmailTypeFeedbackResponse, from, []string{feedback.Email}, data); err != nil {
		return errors.Wrapf(err, "sending feedback response email for %s", feedback.Email)
	}

	return nil
}
