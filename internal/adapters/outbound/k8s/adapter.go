package k8s

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

const (
	claimKind = "PersistentVolumeClaim"

	// describeEventLimit is the number of most recent events included in a description.
	describeEventLimit = 10
)

type adapter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
}

// New creates a new K8s adapter.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
) restarter.ClusterWorkload {
	return &adapter{
		logger:    logger,
		clientset: clientset,
	}
}

var _ restarter.ClusterWorkload = (*adapter)(nil)

func (a *adapter) PingQuery(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping api server: %w", err)
	}

	// ServerVersion takes no context; the result channel is buffered so the call can
	// finish after ctx is done without blocking.
	type versionResult struct {
		info *version.Info
		err  error
	}

	resultCh := make(chan versionResult, 1)

	go func() {
		info, err := a.clientset.Discovery().ServerVersion()
		resultCh <- versionResult{info: info, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("ping api server: %w", ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return fmt.Errorf("ping api server: %w", res.err)
		}

		a.logger.DebugContext(ctx, "api server reachable", "version", res.info.GitVersion)

		return nil
	}
}

func (a *adapter) ScaleCommand(
	ctx context.Context,
	ref topology.ResourceRef,
	replicas int32,
) error {
	patch := map[string]any{
		"spec": map[string]any{
			"replicas": replicas,
		},
	}

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal replicas patch: %w", err)
	}

	switch ref.Kind {
	case topology.KindDeployment:
		_, err = a.clientset.AppsV1().Deployments(ref.Namespace).Patch(
			ctx,
			ref.Name,
			types.MergePatchType,
			patchBytes,
			metav1.PatchOptions{},
		)
	case topology.KindStatefulSet:
		_, err = a.clientset.AppsV1().StatefulSets(ref.Namespace).Patch(
			ctx,
			ref.Name,
			types.MergePatchType,
			patchBytes,
			metav1.PatchOptions{},
		)
	default:
		return fmt.Errorf("scale %s: %w", ref, &UnsupportedKindError{Kind: string(ref.Kind)})
	}

	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("scale %s: %w", ref, &NotFoundError{Kind: string(ref.Kind), Name: ref.Name})
		}

		return fmt.Errorf("scale %s: %w", ref, err)
	}

	return nil
}

func (a *adapter) GetAvailabilityQuery(
	ctx context.Context,
	ref topology.ResourceRef,
) (restarter.Availability, error) {
	switch ref.Kind {
	case topology.KindDeployment:
		deployment, err := a.clientset.AppsV1().Deployments(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return restarter.Availability{}, a.getError(ref, err)
		}

		return deploymentAvailability(deployment), nil
	case topology.KindStatefulSet:
		statefulSet, err := a.clientset.AppsV1().StatefulSets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return restarter.Availability{}, a.getError(ref, err)
		}

		return statefulSetAvailability(statefulSet), nil
	}

	return restarter.Availability{}, fmt.Errorf("get %s: %w", ref, &UnsupportedKindError{Kind: string(ref.Kind)})
}

func (a *adapter) DescribeQuery(
	ctx context.Context,
	ref topology.ResourceRef,
) (string, error) {
	var (
		summary  workloadSummary
		selector *metav1.LabelSelector
	)

	switch ref.Kind {
	case topology.KindDeployment:
		deployment, err := a.clientset.AppsV1().Deployments(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return "", a.getError(ref, err)
		}

		summary = summarizeDeployment(deployment)
		selector = deployment.Spec.Selector
	case topology.KindStatefulSet:
		statefulSet, err := a.clientset.AppsV1().StatefulSets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
		if err != nil {
			return "", a.getError(ref, err)
		}

		summary = summarizeStatefulSet(statefulSet)
		selector = statefulSet.Spec.Selector
	default:
		return "", fmt.Errorf("describe %s: %w", ref, &UnsupportedKindError{Kind: string(ref.Kind)})
	}

	// pods and events are best-effort parts of the description
	pods, err := a.listPods(ctx, ref.Namespace, selector)
	if err != nil {
		a.logger.DebugContext(ctx, "list workload pods failed", "resource", ref.String(), "reason", err)
	}

	events, err := a.listEvents(ctx, ref)
	if err != nil {
		a.logger.DebugContext(ctx, "list workload events failed", "resource", ref.String(), "reason", err)
	}

	return renderDescription(ref, summary, pods, events), nil
}

func (a *adapter) DeleteStorageClaimCommand(
	ctx context.Context,
	namespace,
	claim string,
) error {
	err := a.clientset.CoreV1().PersistentVolumeClaims(namespace).Delete(ctx, claim, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("delete claim: %w", &NotFoundError{Kind: claimKind, Name: claim})
		}

		return fmt.Errorf("delete claim: %w", err)
	}

	return nil
}

func (a *adapter) listPods(
	ctx context.Context,
	namespace string,
	selector *metav1.LabelSelector,
) ([]corev1.Pod, error) {
	if selector == nil {
		return nil, nil
	}

	labelSelector, err := metav1.LabelSelectorAsSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("parse selector: %w", err)
	}

	podList, err := a.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	return podList.Items, nil
}

func (a *adapter) listEvents(ctx context.Context, ref topology.ResourceRef) ([]corev1.Event, error) {
	eventList, err := a.clientset.CoreV1().Events(ref.Namespace).List(ctx, metav1.ListOptions{
		FieldSelector: fields.AndSelectors(
			fields.OneTermEqualSelector("involvedObject.name", ref.Name),
			fields.OneTermEqualSelector("involvedObject.kind", string(ref.Kind)),
		).String(),
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return recentEvents(eventList.Items, ref, describeEventLimit), nil
}

func (a *adapter) getError(ref topology.ResourceRef, err error) error {
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("get %s: %w", ref, &NotFoundError{Kind: string(ref.Kind), Name: ref.Name})
	}

	return fmt.Errorf("get %s: %w", ref, err)
}
