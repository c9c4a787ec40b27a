package coach

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

// The schema is the single source of truth for what we ask the provider for;
// the FitnessPlan type is what we parse into. These tests catch drift
// between the two.
func TestPlanSchemaMatchesPlanType(t *testing.T) {
	schema := planSchema()

	data, err := json.Marshal(validPlan())
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}

	for key := range asMap {
		if _, ok := schema.Properties[key]; !ok {
			t.Errorf("FitnessPlan serializes %q but the schema does not declare it", key)
		}
	}
	for key := range schema.Properties {
		if _, ok := asMap[key]; !ok {
			t.Errorf("Schema declares %q but FitnessPlan does not serialize it", key)
		}
	}

	if len(schema.Required) != len(schema.Properties) {
		t.Errorf("Expected every top-level field to be required, got %d of %d",
			len(schema.Required), len(schema.Properties))
	}
}

func TestPlanSchemaVideoURLIsOptional(t *testing.T) {
	schema := planSchema()

	exercise := schema.Properties["weeklyWorkoutPlan"].Items.Properties["exercises"].Items
	if exercise.Type != genai.TypeObject {
		t.Fatalf("Expected exercise schema to be an object, got %v", exercise.Type)
	}
	if _, ok := exercise.Properties["videoUrl"]; !ok {
		t.Fatal("Expected exercise schema to declare videoUrl")
	}
	for _, required := range exercise.Required {
		if required == "videoUrl" {
			t.Error("videoUrl must stay optional")
		}
	}
}
