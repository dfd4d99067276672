package editor

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/logging"
)

// Saver runs one save batch for a draft against the remote API.
type Saver struct {
	Client api.Client
}

// NodeOutcome is the settled result of one node operation in a batch.
type NodeOutcome struct {
	Index  int
	Action ModifyStatus
	OK     bool
	NewID  int
	Errors []api.FieldError
}

// SaveResult is everything a settled batch wants to say. It is applied to
// the draft exactly once, by ApplySaveResult, so no reader ever observes a
// half-applied batch.
type SaveResult struct {
	ValidationFailed bool
	Validation       []api.FieldError

	ParentOK      bool
	ParentCreated bool
	NewConfigID   int
	ParentErrors  []api.FieldError

	// ScrollToErrors asks the UI to bring the parent error region into view.
	ScrollToErrors bool

	Nodes      []NodeOutcome
	AllNodesOK bool
}

// nodeJob is the snapshot of one row taken before any goroutine runs, so the
// batch never reads the live draft concurrently with the UI.
type nodeJob struct {
	index  int
	id     int
	status ModifyStatus
	spec   api.NodeSpec
}

// Save validates the draft and, if it passes, persists the parent and its
// nodes. An unpersisted parent is created first and node creates are issued
// only after that call resolves; a persisted parent's update runs
// concurrently with the node operations, with no ordering among nodes.
//
// Save never mutates the draft and never returns an error: every failure is
// folded into the result.
func (s Saver) Save(ctx context.Context, d *ConfigDraft) SaveResult {
	if errs := d.Schema().Validate(d.Payload()); len(errs) > 0 {
		return SaveResult{
			ValidationFailed: true,
			Validation:       errs,
			ScrollToErrors:   true,
		}
	}

	jobs := make([]nodeJob, 0, len(d.Nodes))
	for i := range d.Nodes {
		n := &d.Nodes[i]
		status := n.Status
		if n.ID == 0 && status != StatusDelete {
			// A row that was never persisted is a create no matter how
			// it is tagged.
			status = StatusNew
		}
		jobs = append(jobs, nodeJob{index: i, id: n.ID, status: status, spec: n.NodeSpec()})
	}

	spec := d.ConfigSpec()

	if d.State == Unpersisted {
		return s.saveNew(ctx, d.BalancerID, spec, jobs)
	}
	return s.saveExisting(ctx, d.BalancerID, d.ID, spec, jobs)
}

// saveNew creates the parent, then creates its nodes. Nodes cannot be
// created against a parent that does not yet exist remotely, so the node
// calls wait for the parent create to resolve and are skipped entirely when
// it fails.
func (s Saver) saveNew(ctx context.Context, balancerID int, spec api.ConfigSpec, jobs []nodeJob) SaveResult {
	created, err := s.Client.CreateConfig(ctx, balancerID, spec)
	if err != nil {
		logging.LogError("config create failed for balancer %d: %v", balancerID, err)
		return SaveResult{
			ParentErrors:   api.FieldErrors(err),
			ScrollToErrors: true,
		}
	}

	res := SaveResult{
		ParentOK:      true,
		ParentCreated: true,
		NewConfigID:   created.ID,
	}
	res.Nodes, res.AllNodesOK = s.runNodeJobs(ctx, balancerID, created.ID, jobs)
	return res
}

// saveExisting updates the parent and runs the node operations concurrently.
func (s Saver) saveExisting(ctx context.Context, balancerID, configID int, spec api.ConfigSpec, jobs []nodeJob) SaveResult {
	res := SaveResult{}

	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.Client.UpdateConfig(ctx, balancerID, configID, spec); err != nil {
			logging.LogError("config update failed for config %d: %v", configID, err)
			res.ParentErrors = api.FieldErrors(err)
			res.ScrollToErrors = true
			return nil
		}
		res.ParentOK = true
		return nil
	})

	outcomes := make([]NodeOutcome, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			outcomes[i] = s.runNodeJob(ctx, balancerID, configID, job)
			return nil
		})
	}
	_ = g.Wait()

	res.Nodes = outcomes
	res.AllNodesOK = allOK(outcomes)
	return res
}

// runNodeJobs runs node operations for a freshly created parent. All rows
// are creates at this point; rows tagged Delete never reached the remote and
// are settled as successful no-ops.
func (s Saver) runNodeJobs(ctx context.Context, balancerID, configID int, jobs []nodeJob) ([]NodeOutcome, bool) {
	outcomes := make([]NodeOutcome, len(jobs))

	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			outcomes[i] = s.runNodeJob(ctx, balancerID, configID, job)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, allOK(outcomes)
}

// runNodeJob executes one node operation chosen by the row's status. A
// rejection never escapes as an error; it becomes a failed outcome carrying
// the extracted field errors.
func (s Saver) runNodeJob(ctx context.Context, balancerID, configID int, job nodeJob) NodeOutcome {
	out := NodeOutcome{Index: job.index, Action: job.status}

	switch job.status {
	case StatusDelete:
		if job.id == 0 {
			// Never persisted; nothing to delete remotely.
			out.OK = true
			return out
		}
		if err := s.Client.DeleteNode(ctx, balancerID, configID, job.id); err != nil {
			logging.LogError("node delete failed for node %d: %v", job.id, err)
			out.Errors = api.FieldErrors(err)
			return out
		}
		out.OK = true

	case StatusNew:
		created, err := s.Client.CreateNode(ctx, balancerID, configID, job.spec)
		if err != nil {
			logging.LogError("node create failed (index %d): %v", job.index, err)
			out.Errors = api.FieldErrors(err)
			return out
		}
		out.OK = true
		out.NewID = created.ID

	case StatusUpdate:
		if _, err := s.Client.UpdateNode(ctx, balancerID, configID, job.id, job.spec); err != nil {
			logging.LogError("node update failed for node %d: %v", job.id, err)
			out.Errors = api.FieldErrors(err)
			return out
		}
		out.OK = true

	default:
		// Unchanged rows settle as successes without a remote call.
		out.OK = true
	}

	return out
}

func allOK(outcomes []NodeOutcome) bool {
	ok := true
	for _, out := range outcomes {
		ok = ok && out.OK
	}
	return ok
}

// ApplySaveResult folds a settled batch into the draft in one step. It is
// the only place save outcomes touch draft state, so partial application is
// never visible.
func ApplySaveResult(d *ConfigDraft, res SaveResult) {
	d.Submitting = false
	d.ConfigMsg = ""
	d.NodeMsg = ""

	if res.ValidationFailed {
		DistributeErrors(d, res.Validation)
		return
	}

	if res.ParentOK {
		DistributeErrors(d, nil)
		if res.ParentCreated {
			d.ID = res.NewConfigID
			d.State = Persisted
		}
		d.ConfigMsg = "Configuration saved."
	} else {
		DistributeErrors(d, res.ParentErrors)
	}

	// Node operations really ran even when a concurrent parent update
	// failed, so their outcomes are applied either way.
	var deleted []int
	for _, out := range res.Nodes {
		if out.Index < 0 || out.Index >= len(d.Nodes) {
			continue
		}
		n := &d.Nodes[out.Index]

		if !out.OK {
			// Failed rows keep their tag and show their errors; no
			// optimistic removal on a failed delete.
			n.Errors = append(n.Errors, out.Errors...)
			continue
		}

		switch out.Action {
		case StatusDelete:
			deleted = append(deleted, out.Index)
		case StatusNew:
			n.ID = out.NewID
			n.Status = StatusUnchanged
		case StatusUpdate:
			n.Status = StatusUnchanged
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(deleted)))
	for _, index := range deleted {
		d.Nodes = append(d.Nodes[:index], d.Nodes[index+1:]...)
	}

	if res.AllNodesOK && len(res.Nodes) > 0 {
		d.NodeMsg = "Node changes saved."
	}
}
