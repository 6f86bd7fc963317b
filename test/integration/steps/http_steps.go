package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{goal_id}}", t.currentGoalID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.currentBudgetID.String())
	content = strings.ReplaceAll(content, "{{template_id}}", t.currentTemplateID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{item_id}}", t.lastItemID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.uri + path

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}

	t.response.body = responseBody
	t.captureIdentifiers(responseBody)
	return nil
}

// captureIdentifiers remembers ids and tokens from responses so later
// steps can reference them via placeholders.
func (t *testContext) captureIdentifiers(body map[string]any) {
	if token, ok := body["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}

	if id, ok := parseID(body, "id"); ok {
		switch {
		case hasKey(body, "target_amount"):
			t.currentGoalID = id
		case hasKey(body, "limit_amount"):
			t.currentBudgetID = id
		case hasKey(body, "default_amount"):
			t.currentTemplateID = id
		case hasKey(body, "icon") && hasKey(body, "type"):
			t.currentCategoryID = id
		case hasKey(body, "amount") && hasKey(body, "description"):
			t.lastTransactionID = id
		}
	}

	// Nested objects from composite responses.
	if nested, ok := body["transaction"].(map[string]any); ok {
		if id, ok := parseID(nested, "id"); ok {
			t.lastTransactionID = id
		}
	}
	if nested, ok := body["template"].(map[string]any); ok {
		if id, ok := parseID(nested, "id"); ok {
			t.currentTemplateID = id
		}
	}
	if nested, ok := body["goal"].(map[string]any); ok {
		if id, ok := parseID(nested, "id"); ok {
			t.currentGoalID = id
		}
	}
	if nested, ok := body["item"].(map[string]any); ok {
		if id, ok := parseID(nested, "id"); ok {
			t.lastItemID = id
		}
	}

	// From a monthly document, remember the first pending item so a
	// settle request can reference it.
	if items, ok := body["items"].([]any); ok {
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if status, _ := item["status"].(string); status == "pending" {
				if id, ok := parseID(item, "id"); ok {
					t.lastItemID = id
					break
				}
			}
		}
	}
}

func parseID(m map[string]any, key string) (uuid.UUID, bool) {
	raw, ok := m[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field %q: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response: %v", field, body)
	}
	return value, nil
}

// getFieldValue resolves a dot separated path through nested objects and
// arrays. Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, current := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if index, err := strconv.Atoi(current); err == nil {
			arr, ok := field.([]any)
			if !ok || index >= len(arr) {
				return nil
			}
			field = arr[index]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[current]
	}

	return field
}
