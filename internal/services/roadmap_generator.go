package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/careerpilot/backend/internal/logger"
  "github.com/careerpilot/backend/internal/types"
)

// RoadmapTemplate is the flat, locally-indexed plan produced by the content
// generator. Task prerequisite references use DependsOn: 0-based indices into
// the global task ordering across all milestones, in generation order.
type RoadmapTemplate struct {
  Title          string              `json:"title"`
  Description    string              `json:"description"`
  EstimatedHours int                 `json:"estimated_hours"`
  Milestones     []MilestoneTemplate `json:"milestones"`
}

type MilestoneTemplate struct {
  Title       string         `json:"title"`
  Description string         `json:"description"`
  Tasks       []TaskTemplate `json:"tasks"`
}

type TaskTemplate struct {
  Title          string   `json:"title"`
  Description    string   `json:"description"`
  Category       string   `json:"category"`
  Priority       string   `json:"priority"`
  Difficulty     string   `json:"difficulty"`
  EstimatedHours int      `json:"estimated_hours"`
  Resources      []string `json:"resources"`
  DependsOn      []int    `json:"depends_on"`
}

// TaskCount returns the number of tasks across all milestones.
func (t *RoadmapTemplate) TaskCount() int {
  n := 0
  for _, m := range t.Milestones {
    n += len(m.Tasks)
  }
  return n
}

type RoadmapGeneratorService interface {
  // Generate always returns a usable template: AI output when the upstream
  // cooperates, the canned fallback for the profile's experience level
  // otherwise.
  Generate(ctx context.Context, profile *types.Profile) (*RoadmapTemplate, error)
}

type roadmapGeneratorService struct {
  log *logger.Logger
  ai  AIClient
}

func NewRoadmapGeneratorService(baseLog *logger.Logger, ai AIClient) RoadmapGeneratorService {
  return &roadmapGeneratorService{
    log: baseLog.With("service", "RoadmapGeneratorService"),
    ai:  ai,
  }
}

func (s *roadmapGeneratorService) Generate(ctx context.Context, profile *types.Profile) (*RoadmapTemplate, error) {
  if profile == nil {
    return nil, fmt.Errorf("profile required")
  }

  if s.ai != nil {
    tpl, err := s.generateFromAI(ctx, profile)
    if err == nil {
      return tpl, nil
    }
    s.log.Warn("AI roadmap generation failed, using fallback template", "error", err, "user_id", profile.UserID)
  }

  return FallbackTemplate(profile), nil
}

func (s *roadmapGeneratorService) generateFromAI(ctx context.Context, profile *types.Profile) (*RoadmapTemplate, error) {
  var skills []string
  if len(profile.CurrentSkills) > 0 {
    _ = json.Unmarshal(profile.CurrentSkills, &skills)
  }

  system := "You are a career coach generating a structured learning roadmap. " +
    "Produce 3-5 milestones, each with 3-6 tasks. Tasks may declare prerequisites " +
    "through depends_on: 0-based indices into the flat task list in generation order, " +
    "referring only to earlier tasks."
  user := fmt.Sprintf(
    "Target role: %s\nExperience level: %s\nCurrent skills: %s\nAvailable hours per week: %d",
    profile.TargetRole, profile.ExperienceLevel, strings.Join(skills, ", "), profile.WeeklyHours,
  )

  obj, err := s.ai.GenerateJSON(ctx, system, user, "roadmap_template", roadmapTemplateSchema())
  if err != nil {
    return nil, err
  }
  return ParseTemplate(obj)
}

// ParseTemplate converts the generator's decoded JSON object into a
// RoadmapTemplate and rejects shapes the materializer cannot consume.
func ParseTemplate(obj map[string]any) (*RoadmapTemplate, error) {
  raw, err := json.Marshal(obj)
  if err != nil {
    return nil, fmt.Errorf("re-encode template: %w", err)
  }
  var tpl RoadmapTemplate
  if err := json.Unmarshal(raw, &tpl); err != nil {
    return nil, fmt.Errorf("decode template: %w", err)
  }
  if strings.TrimSpace(tpl.Title) == "" {
    return nil, fmt.Errorf("template missing title")
  }
  if len(tpl.Milestones) == 0 {
    return nil, fmt.Errorf("template has no milestones")
  }
  if tpl.TaskCount() == 0 {
    return nil, fmt.Errorf("template has no tasks")
  }
  return &tpl, nil
}

func roadmapTemplateSchema() map[string]any {
  taskSchema := map[string]any{
    "type": "object",
    "properties": map[string]any{
      "title":           map[string]any{"type": "string"},
      "description":     map[string]any{"type": "string"},
      "category":        map[string]any{"type": "string", "enum": []string{"learning", "project", "practice", "reading"}},
      "priority":        map[string]any{"type": "string", "enum": []string{"low", "medium", "high", "critical"}},
      "difficulty":      map[string]any{"type": "string", "enum": []string{"beginner", "intermediate", "advanced"}},
      "estimated_hours": map[string]any{"type": "integer"},
      "resources":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
      "depends_on":      map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
    },
    "required":             []string{"title", "description", "category", "priority", "difficulty", "estimated_hours", "resources", "depends_on"},
    "additionalProperties": false,
  }
  milestoneSchema := map[string]any{
    "type": "object",
    "properties": map[string]any{
      "title":       map[string]any{"type": "string"},
      "description": map[string]any{"type": "string"},
      "tasks":       map[string]any{"type": "array", "items": taskSchema},
    },
    "required":             []string{"title", "description", "tasks"},
    "additionalProperties": false,
  }
  return map[string]any{
    "type": "object",
    "properties": map[string]any{
      "title":           map[string]any{"type": "string"},
      "description":     map[string]any{"type": "string"},
      "estimated_hours": map[string]any{"type": "integer"},
      "milestones":      map[string]any{"type": "array", "items": milestoneSchema},
    },
    "required":             []string{"title", "description", "estimated_hours", "milestones"},
    "additionalProperties": false,
  }
}

// FallbackTemplate returns the canned roadmap for the profile's experience
// level so generation still succeeds when the upstream is unreachable.
func FallbackTemplate(profile *types.Profile) *RoadmapTemplate {
  role := strings.TrimSpace(profile.TargetRole)
  if role == "" {
    role = "Software Engineer"
  }

  switch profile.ExperienceLevel {
  case types.ExperienceAdvanced:
    return advancedFallback(role)
  case types.ExperienceIntermediate:
    return intermediateFallback(role)
  default:
    return beginnerFallback(role)
  }
}

func beginnerFallback(role string) *RoadmapTemplate {
  return &RoadmapTemplate{
    Title:          fmt.Sprintf("%s Starter Roadmap", role),
    Description:    fmt.Sprintf("A foundation-first plan toward a %s role.", role),
    EstimatedHours: 90,
    Milestones: []MilestoneTemplate{
      {
        Title:       "Foundations",
        Description: "Core concepts and tooling.",
        Tasks: []TaskTemplate{
          {Title: "Set up your development environment", Description: "Editor, terminal, version control.", Category: types.TaskCategoryPractice, Priority: "high", Difficulty: "beginner", EstimatedHours: 4, Resources: []string{"https://git-scm.com/book"}},
          {Title: "Learn the fundamentals", Description: "Work through an introductory course end to end.", Category: types.TaskCategoryLearning, Priority: "critical", Difficulty: "beginner", EstimatedHours: 20, DependsOn: []int{0}},
          {Title: "Daily practice exercises", Description: "Small katas to cement the basics.", Category: types.TaskCategoryPractice, Priority: "medium", Difficulty: "beginner", EstimatedHours: 10, DependsOn: []int{1}},
        },
      },
      {
        Title:       "First Projects",
        Description: "Apply the basics on something real.",
        Tasks: []TaskTemplate{
          {Title: "Build a small end-to-end project", Description: "Scope it to a weekend; finish it.", Category: types.TaskCategoryProject, Priority: "high", Difficulty: "beginner", EstimatedHours: 16, DependsOn: []int{1}},
          {Title: "Read code from an open source project", Description: "Pick one active repo and read it for a week.", Category: types.TaskCategoryReading, Priority: "medium", Difficulty: "intermediate", EstimatedHours: 8, DependsOn: []int{1}},
          {Title: "Publish and document your project", Description: "README, deploy, and a short writeup.", Category: types.TaskCategoryProject, Priority: "medium", Difficulty: "beginner", EstimatedHours: 6, DependsOn: []int{3}},
        },
      },
      {
        Title:       "Interview Readiness",
        Description: "Turn the work into a story.",
        Tasks: []TaskTemplate{
          {Title: "Draft your resume around the project", Description: "Concrete outcomes, not buzzwords.", Category: types.TaskCategoryPractice, Priority: "high", Difficulty: "beginner", EstimatedHours: 4, DependsOn: []int{5}},
          {Title: "Practice common interview questions", Description: "One mock session per week.", Category: types.TaskCategoryPractice, Priority: "high", Difficulty: "intermediate", EstimatedHours: 12, DependsOn: []int{2}},
        },
      },
    },
  }
}

func intermediateFallback(role string) *RoadmapTemplate {
  return &RoadmapTemplate{
    Title:          fmt.Sprintf("%s Growth Roadmap", role),
    Description:    fmt.Sprintf("Deepen and broaden toward a stronger %s profile.", role),
    EstimatedHours: 110,
    Milestones: []MilestoneTemplate{
      {
        Title:       "Depth",
        Description: "Close the gaps that separate juniors from mid-levels.",
        Tasks: []TaskTemplate{
          {Title: "Audit your skill gaps", Description: "Map current skills against job postings for the role.", Category: types.TaskCategoryPractice, Priority: "critical", Difficulty: "intermediate", EstimatedHours: 4},
          {Title: "Study one core topic in depth", Description: "Pick the weakest area from the audit.", Category: types.TaskCategoryLearning, Priority: "high", Difficulty: "intermediate", EstimatedHours: 24, DependsOn: []int{0}},
          {Title: "Read a canonical book for the field", Description: "Cover to cover, with notes.", Category: types.TaskCategoryReading, Priority: "medium", Difficulty: "intermediate", EstimatedHours: 16, DependsOn: []int{0}},
        },
      },
      {
        Title:       "Production Experience",
        Description: "Work the way real teams work.",
        Tasks: []TaskTemplate{
          {Title: "Build a production-grade project", Description: "Tests, CI, observability, deployment.", Category: types.TaskCategoryProject, Priority: "critical", Difficulty: "advanced", EstimatedHours: 32, DependsOn: []int{1}},
          {Title: "Contribute to an open source project", Description: "Land at least two merged pull requests.", Category: types.TaskCategoryProject, Priority: "high", Difficulty: "intermediate", EstimatedHours: 16, DependsOn: []int{1}},
        },
      },
      {
        Title:       "Positioning",
        Description: "Make the growth visible.",
        Tasks: []TaskTemplate{
          {Title: "Write about what you built", Description: "Two technical posts with real depth.", Category: types.TaskCategoryPractice, Priority: "medium", Difficulty: "intermediate", EstimatedHours: 8, DependsOn: []int{3}},
          {Title: "Targeted interview preparation", Description: "System design and role-specific drills.", Category: types.TaskCategoryPractice, Priority: "high", Difficulty: "advanced", EstimatedHours: 10, DependsOn: []int{3, 4}},
        },
      },
    },
  }
}

func advancedFallback(role string) *RoadmapTemplate {
  return &RoadmapTemplate{
    Title:          fmt.Sprintf("Senior %s Roadmap", role),
    Description:    fmt.Sprintf("Leverage and leadership for a senior %s role.", role),
    EstimatedHours: 80,
    Milestones: []MilestoneTemplate{
      {
        Title:       "Expertise",
        Description: "Be the person others ask.",
        Tasks: []TaskTemplate{
          {Title: "Pick a specialization", Description: "Choose the niche you want to be known for.", Category: types.TaskCategoryPractice, Priority: "critical", Difficulty: "advanced", EstimatedHours: 4},
          {Title: "Study the frontier of the niche", Description: "Papers, talks, and primary sources.", Category: types.TaskCategoryReading, Priority: "high", Difficulty: "advanced", EstimatedHours: 20, DependsOn: []int{0}},
        },
      },
      {
        Title:       "Leverage",
        Description: "Ship something with reach.",
        Tasks: []TaskTemplate{
          {Title: "Build or maintain a public tool", Description: "Something other practitioners actually use.", Category: types.TaskCategoryProject, Priority: "high", Difficulty: "advanced", EstimatedHours: 30, DependsOn: []int{1}},
          {Title: "Give a talk or publish a deep-dive", Description: "Conference, meetup, or a widely-shared post.", Category: types.TaskCategoryPractice, Priority: "medium", Difficulty: "advanced", EstimatedHours: 12, DependsOn: []int{1}},
        },
      },
      {
        Title:       "Leadership",
        Description: "Multiply through others.",
        Tasks: []TaskTemplate{
          {Title: "Mentor one engineer for a quarter", Description: "Regular sessions with concrete goals.", Category: types.TaskCategoryPractice, Priority: "medium", Difficulty: "advanced", EstimatedHours: 10, DependsOn: []int{2}},
          {Title: "Prepare for senior-level interviews", Description: "Architecture reviews and leadership stories.", Category: types.TaskCategoryPractice, Priority: "high", Difficulty: "advanced", EstimatedHours: 8, DependsOn: []int{2, 3}},
        },
      },
    },
  }
}
