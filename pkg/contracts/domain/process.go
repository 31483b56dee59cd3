package domain

import "time"

// ProcessStatus is the lifecycle state of a process definition
type ProcessStatus string

const (
	ProcessStatusDraft      ProcessStatus = "draft"
	ProcessStatusActive     ProcessStatus = "active"
	ProcessStatusInactive   ProcessStatus = "inactive"
	ProcessStatusDeprecated ProcessStatus = "deprecated"
)

// Process is a versioned process definition
type Process struct {
	ID          string            `json:"id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	Status      ProcessStatus     `json:"status" validate:"oneof=draft active inactive deprecated"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Definition  ProcessDefinition `json:"definition"`
}

// ProcessDefinition is the designer graph of a process
type ProcessDefinition struct {
	Nodes     []ProcessNode     `json:"nodes"`
	Edges     []ProcessEdge     `json:"edges"`
	Variables []ProcessVariable `json:"variables"`
}

// NodeType classifies a graph node
type NodeType string

const (
	NodeTypeStart   NodeType = "start"
	NodeTypeEnd     NodeType = "end"
	NodeTypeTask    NodeType = "task"
	NodeTypeGateway NodeType = "gateway"
	NodeTypeEvent   NodeType = "event"
)

// Position is a node's canvas coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProcessNode is one node of the designer graph
type ProcessNode struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// NodeData carries a node's label, free-form properties and optional form
type NodeData struct {
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties"`
	FormSchema *FormSchema    `json:"formSchema,omitempty"`
}

// ProcessEdge connects two nodes, optionally guarded by a condition expression
type ProcessEdge struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Label     string `json:"label,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// VariableType is the declared type of a process variable
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeNumber  VariableType = "number"
	VariableTypeBoolean VariableType = "boolean"
	VariableTypeObject  VariableType = "object"
	VariableTypeArray   VariableType = "array"
)

// ProcessVariable declares a variable available to a process instance
type ProcessVariable struct {
	Name         string       `json:"name"`
	Type         VariableType `json:"type"`
	DefaultValue any          `json:"defaultValue,omitempty"`
	Required     bool         `json:"required"`
}

// ProcessInstanceStatus is the runtime state of a started process
type ProcessInstanceStatus string

const (
	InstanceStatusRunning    ProcessInstanceStatus = "running"
	InstanceStatusCompleted  ProcessInstanceStatus = "completed"
	InstanceStatusSuspended  ProcessInstanceStatus = "suspended"
	InstanceStatusTerminated ProcessInstanceStatus = "terminated"
)

// ProcessInstance is one execution of a Process
type ProcessInstance struct {
	ID           string                `json:"id"`
	ProcessID    string                `json:"processId"`
	Status       ProcessInstanceStatus `json:"status"`
	StartedBy    string                `json:"startedBy"`
	StartedAt    time.Time             `json:"startedAt"`
	EndedAt      *time.Time            `json:"endedAt,omitempty"`
	Variables    map[string]any        `json:"variables"`
	CurrentTasks []Task                `json:"currentTasks"`
}

// FormSchema is a JSON Schema (draft 7) form with optional UI hints. Both schemas are
// kept as raw maps since the shell only relays them.
type FormSchema struct {
	Schema   map[string]any `json:"schema"`
	UISchema map[string]any `json:"uiSchema,omitempty"`
	FormData any            `json:"formData,omitempty"`
	Readonly bool           `json:"readonly,omitempty"`
}
