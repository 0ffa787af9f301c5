package k8s

import (
	"fmt"
	"sort"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

type condition struct {
	Type    string
	Status  string
	Reason  string
	Message string
}

type workloadSummary struct {
	Desired    int32
	Ready      int32
	Available  int32
	Updated    int32
	Conditions []condition
}

func desiredReplicas(replicas *int32) int32 {
	if replicas == nil {
		return 1
	}

	return *replicas
}

func deploymentAvailability(deployment *appsv1.Deployment) restarter.Availability {
	desired := desiredReplicas(deployment.Spec.Replicas)
	message := fmt.Sprintf("%d/%d replicas available", deployment.Status.AvailableReplicas, desired)

	if deployment.Status.ObservedGeneration < deployment.Generation {
		return restarter.Availability{Message: message + ", rollout not observed yet"}
	}

	for _, cond := range deployment.Status.Conditions {
		if cond.Type != appsv1.DeploymentAvailable {
			continue
		}

		if cond.Status == corev1.ConditionTrue && deployment.Status.AvailableReplicas > 0 {
			return restarter.Availability{Available: true, Message: message}
		}

		if cond.Message != "" {
			message += ": " + cond.Message
		}

		return restarter.Availability{Message: message}
	}

	return restarter.Availability{Message: message + ", no Available condition"}
}

func statefulSetAvailability(statefulSet *appsv1.StatefulSet) restarter.Availability {
	desired := desiredReplicas(statefulSet.Spec.Replicas)
	message := fmt.Sprintf("%d/%d replicas ready", statefulSet.Status.ReadyReplicas, desired)

	if statefulSet.Status.ObservedGeneration < statefulSet.Generation {
		return restarter.Availability{Message: message + ", rollout not observed yet"}
	}

	available := desired > 0 && statefulSet.Status.ReadyReplicas >= desired

	return restarter.Availability{Available: available, Message: message}
}

func summarizeDeployment(deployment *appsv1.Deployment) workloadSummary {
	out := workloadSummary{
		Desired:   desiredReplicas(deployment.Spec.Replicas),
		Ready:     deployment.Status.ReadyReplicas,
		Available: deployment.Status.AvailableReplicas,
		Updated:   deployment.Status.UpdatedReplicas,
	}

	for _, cond := range deployment.Status.Conditions {
		out.Conditions = append(out.Conditions, condition{
			Type:    string(cond.Type),
			Status:  string(cond.Status),
			Reason:  cond.Reason,
			Message: cond.Message,
		})
	}

	return out
}

func summarizeStatefulSet(statefulSet *appsv1.StatefulSet) workloadSummary {
	out := workloadSummary{
		Desired:   desiredReplicas(statefulSet.Spec.Replicas),
		Ready:     statefulSet.Status.ReadyReplicas,
		Available: statefulSet.Status.AvailableReplicas,
		Updated:   statefulSet.Status.UpdatedReplicas,
	}

	for _, cond := range statefulSet.Status.Conditions {
		out.Conditions = append(out.Conditions, condition{
			Type:    string(cond.Type),
			Status:  string(cond.Status),
			Reason:  cond.Reason,
			Message: cond.Message,
		})
	}

	return out
}

// recentEvents keeps the events of ref, newest last, at most limit of them.
func recentEvents(events []corev1.Event, ref topology.ResourceRef, limit int) []corev1.Event {
	out := make([]corev1.Event, 0, len(events))

	for i := range events {
		obj := events[i].InvolvedObject
		if obj.Name != ref.Name || (obj.Kind != "" && obj.Kind != string(ref.Kind)) {
			continue
		}

		out = append(out, events[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return eventTime(out[i]).Before(eventTime(out[j]))
	})

	if len(out) > limit {
		out = out[len(out)-limit:]
	}

	return out
}

func eventTime(event corev1.Event) time.Time {
	switch {
	case !event.LastTimestamp.IsZero():
		return event.LastTimestamp.Time
	case !event.EventTime.IsZero():
		return event.EventTime.Time
	default:
		return event.FirstTimestamp.Time
	}
}

func podLine(pod *corev1.Pod) string {
	var (
		ready    int
		restarts int32
		waiting  []string
	)

	for _, status := range pod.Status.ContainerStatuses {
		if status.Ready {
			ready++
		}

		restarts += status.RestartCount

		if status.State.Waiting != nil && status.State.Waiting.Reason != "" {
			waiting = append(waiting, status.Name+"="+status.State.Waiting.Reason)
		}
	}

	line := fmt.Sprintf("%s %s ready=%d/%d restarts=%d",
		pod.Name, pod.Status.Phase, ready, len(pod.Spec.Containers), restarts)

	if len(waiting) > 0 {
		line += " waiting=" + strings.Join(waiting, ",")
	}

	return line
}

func renderDescription(
	ref topology.ResourceRef,
	summary workloadSummary,
	pods []corev1.Pod,
	events []corev1.Event,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s/%s\n", ref.Kind, ref.Namespace, ref.Name)
	fmt.Fprintf(&b, "Replicas: desired=%d updated=%d ready=%d available=%d\n",
		summary.Desired, summary.Updated, summary.Ready, summary.Available)

	if len(summary.Conditions) > 0 {
		b.WriteString("Conditions:\n")

		for _, cond := range summary.Conditions {
			fmt.Fprintf(&b, "  %s=%s", cond.Type, cond.Status)

			if cond.Reason != "" {
				fmt.Fprintf(&b, " (%s)", cond.Reason)
			}

			if cond.Message != "" {
				fmt.Fprintf(&b, ": %s", cond.Message)
			}

			b.WriteString("\n")
		}
	}

	if len(pods) > 0 {
		b.WriteString("Pods:\n")

		for i := range pods {
			fmt.Fprintf(&b, "  %s\n", podLine(&pods[i]))
		}
	}

	if len(events) > 0 {
		b.WriteString("Events:\n")

		for _, event := range events {
			fmt.Fprintf(&b, "  %s %s: %s\n", event.Type, event.Reason, event.Message)
		}
	} else {
		b.WriteString("Events: <none>\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
