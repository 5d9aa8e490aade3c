package plugin

import (
	"fmt"
	"strings"
)

// Event is one of the lifecycle points the plugin hooks into.
type Event string

// Lifecycle events.
const (
	EventAfterPackage Event = "after-package"
	EventAfterDeploy  Event = "after-deploy"
	EventManualDeploy Event = "manual-deploy"
	EventBeforeRemove Event = "before-remove"
)

// Namespace is the plugin's command namespace in the host framework.
const Namespace = "cognito_clients"

var hostHooks = map[Event]string{
	EventAfterPackage: "after:aws:package:finalize:mergeCustomProviderResources",
	EventAfterDeploy:  "after:deploy:deploy",
	EventManualDeploy: Namespace + ":deploy:deploy",
	EventBeforeRemove: "before:remove:remove",
}

// Events lists every event in the order the host fires them during a deploy/remove cycle.
func Events() []Event {
	return []Event{EventAfterPackage, EventAfterDeploy, EventManualDeploy, EventBeforeRemove}
}

// HostHook returns the host framework's name for the event.
func (e Event) HostHook() string { return hostHooks[e] }

// ParseEvent accepts a short event name or the host framework's hook name.
func ParseEvent(s string) (Event, error) {
	s = strings.TrimSpace(s)
	for _, e := range Events() {
		if s == string(e) || s == e.HostHook() {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown event %q; expected one of %s", s, strings.Join(eventNames(), ", "))
}

func eventNames() []string {
	out := make([]string, 0, len(hostHooks))
	for _, e := range Events() {
		out = append(out, string(e))
	}
	return out
}

// Command describes a host sub-command registered by the plugin.
type Command struct {
	Usage           string
	LifecycleEvents []string
	Commands        map[string]Command
}

// Commands returns the `cognito_clients deploy` command tree registered with the host.
func Commands() map[string]Command {
	return map[string]Command{
		Namespace: {
			LifecycleEvents: []string{"deploy"},
			Commands: map[string]Command{
				"deploy": {
					Usage:           "Deploys a domain using the domain name defined in the serverless file",
					LifecycleEvents: []string{"deploy"},
				},
			},
		},
	}
}
