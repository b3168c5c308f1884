package services

import (
  "strings"
  "testing"

  "github.com/careerpilot/backend/internal/types"
)

func TestFallbackTemplate_PerExperienceLevel(t *testing.T) {
  cases := []struct {
    level     string
    wantTitle string
  }{
    {types.ExperienceBeginner, "Starter"},
    {types.ExperienceIntermediate, "Growth"},
    {types.ExperienceAdvanced, "Senior"},
    {"", "Starter"},
    {"garbage", "Starter"},
  }
  for _, c := range cases {
    tpl := FallbackTemplate(&types.Profile{TargetRole: "Data Engineer", ExperienceLevel: c.level})
    if tpl == nil {
      t.Fatalf("level %q: nil template", c.level)
    }
    if !strings.Contains(tpl.Title, c.wantTitle) {
      t.Fatalf("level %q: title %q should contain %q", c.level, tpl.Title, c.wantTitle)
    }
    if !strings.Contains(tpl.Title, "Data Engineer") {
      t.Fatalf("level %q: title %q should carry the target role", c.level, tpl.Title)
    }
    if len(tpl.Milestones) == 0 || tpl.TaskCount() == 0 {
      t.Fatalf("level %q: template must have milestones and tasks", c.level)
    }
  }
}

func TestFallbackTemplate_DefaultsRole(t *testing.T) {
  tpl := FallbackTemplate(&types.Profile{TargetRole: "  ", ExperienceLevel: types.ExperienceBeginner})
  if !strings.Contains(tpl.Title, "Software Engineer") {
    t.Fatalf("blank role should default, got title %q", tpl.Title)
  }
}

// Every canned template must only reference earlier tasks, since forward and
// out-of-range indices are silently dropped during materialization.
func TestFallbackTemplate_DependsOnReferencesEarlierTasks(t *testing.T) {
  for _, level := range []string{types.ExperienceBeginner, types.ExperienceIntermediate, types.ExperienceAdvanced} {
    tpl := FallbackTemplate(&types.Profile{TargetRole: "Backend Engineer", ExperienceLevel: level})
    idx := 0
    for _, m := range tpl.Milestones {
      for _, task := range m.Tasks {
        for _, dep := range task.DependsOn {
          if dep < 0 || dep >= idx {
            t.Fatalf("level %q task %d (%q): depends_on %d is not an earlier task", level, idx, task.Title, dep)
          }
        }
        idx++
      }
    }
  }
}

func TestParseTemplate_Valid(t *testing.T) {
  obj := map[string]any{
    "title":           "Test Roadmap",
    "description":     "d",
    "estimated_hours": 10,
    "milestones": []any{
      map[string]any{
        "title":       "M1",
        "description": "d",
        "tasks": []any{
          map[string]any{
            "title":           "T1",
            "description":     "d",
            "category":        "learning",
            "priority":        "high",
            "difficulty":      "beginner",
            "estimated_hours": 2,
            "resources":       []any{"https://example.com"},
            "depends_on":      []any{},
          },
          map[string]any{
            "title":           "T2",
            "description":     "d",
            "category":        "project",
            "priority":        "medium",
            "difficulty":      "intermediate",
            "estimated_hours": 4,
            "resources":       []any{},
            "depends_on":      []any{0},
          },
        },
      },
    },
  }

  tpl, err := ParseTemplate(obj)
  if err != nil {
    t.Fatalf("ParseTemplate: %v", err)
  }
  if tpl.Title != "Test Roadmap" {
    t.Fatalf("unexpected title %q", tpl.Title)
  }
  if tpl.TaskCount() != 2 {
    t.Fatalf("expected 2 tasks, got %d", tpl.TaskCount())
  }
  if len(tpl.Milestones[0].Tasks[1].DependsOn) != 1 || tpl.Milestones[0].Tasks[1].DependsOn[0] != 0 {
    t.Fatalf("depends_on not decoded: %v", tpl.Milestones[0].Tasks[1].DependsOn)
  }
}

func TestParseTemplate_RejectsBadShapes(t *testing.T) {
  cases := []struct {
    name string
    obj  map[string]any
  }{
    {"missing title", map[string]any{
      "milestones": []any{map[string]any{"title": "M", "tasks": []any{map[string]any{"title": "T"}}}},
    }},
    {"blank title", map[string]any{
      "title":      "   ",
      "milestones": []any{map[string]any{"title": "M", "tasks": []any{map[string]any{"title": "T"}}}},
    }},
    {"no milestones", map[string]any{
      "title":      "R",
      "milestones": []any{},
    }},
    {"no tasks", map[string]any{
      "title":      "R",
      "milestones": []any{map[string]any{"title": "M", "tasks": []any{}}},
    }},
  }
  for _, c := range cases {
    if _, err := ParseTemplate(c.obj); err == nil {
      t.Fatalf("%s: expected error", c.name)
    }
  }
}
