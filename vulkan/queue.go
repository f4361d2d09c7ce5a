package vulkan

import (
	"fmt"

	"github.com/glaciergfx/rhi"
)

// Queue wraps one native queue handle with submission bookkeeping. Every
// successful submission gets an ID from a per-queue counter starting at 1,
// and a timeline semaphore signals that ID when the GPU finishes the work.
// ID 0 never names a real submission.
type Queue struct {
	device *Device

	kind        rhi.CommandQueue
	handle      QueueHandle
	familyIndex int

	trackingSemaphore SemaphoreHandle
	lastSubmittedID   uint64
	lastFinishedID    uint64

	pending []pendingSubmission
}

// pendingSubmission remembers the command lists of one in-flight submission
// until the tracking semaphore reports it complete.
type pendingSubmission struct {
	id    uint64
	lists []rhi.CommandList
}

func newQueue(d *Device, kind rhi.CommandQueue, handle QueueHandle, familyIndex int) *Queue {
	q := &Queue{
		device:      d,
		kind:        kind,
		handle:      handle,
		familyIndex: familyIndex,
	}

	sem, res := d.driver.CreateTimelineSemaphore(d.device, 0)
	if res != Success {
		d.error(fmt.Sprintf("failed to create the tracking semaphore for the %s queue: %s", kind, res))
		return q
	}
	q.trackingSemaphore = sem
	d.driver.SetDebugName(d.device, rhi.ObjectTypeVKQueue, uintptr(handle),
		fmt.Sprintf("%s queue", kind))
	return q
}

// Kind reports which queue slot this wrapper occupies.
func (q *Queue) Kind() rhi.CommandQueue { return q.kind }

// FamilyIndex reports the native queue family index the application
// supplied for this queue.
func (q *Queue) FamilyIndex() int { return q.familyIndex }

// LastSubmittedID returns the ID of the most recent successful submission,
// or 0 when nothing has been submitted.
func (q *Queue) LastSubmittedID() uint64 { return q.lastSubmittedID }

// LastFinishedID returns the highest submission ID observed complete.
func (q *Queue) LastFinishedID() uint64 { return q.lastFinishedID }

// submit sends the lists' command buffers to the native queue in one
// submission. It returns the new submission ID, or 0 when the native call
// failed; a failed submission does not consume an ID.
func (q *Queue) submit(lists []rhi.CommandList) uint64 {
	buffers := make([]CommandBufferHandle, 0, len(lists))
	for _, list := range lists {
		obj := list.NativeObject(rhi.ObjectTypeVKCommandBuffer)
		if obj.IsNil() {
			q.device.error("submit: command list has no native command buffer")
			return 0
		}
		buffers = append(buffers, CommandBufferHandle(obj.Handle))
	}

	submissionID := q.lastSubmittedID + 1

	res := q.device.driver.QueueSubmit(q.handle, buffers, q.trackingSemaphore, submissionID)
	if res != Success {
		q.device.error(fmt.Sprintf("vkQueueSubmit on the %s queue failed: %s", q.kind, res))
		return 0
	}

	q.lastSubmittedID = submissionID
	q.pending = append(q.pending, pendingSubmission{id: submissionID, lists: lists})
	metricSubmissions.WithLabelValues(q.kind.String()).Inc()
	return submissionID
}

// retireCommandBuffers reads the tracking semaphore once and notifies every
// pending submission whose ID the GPU has reached. Notified lists are
// dropped from the pending set.
func (q *Queue) retireCommandBuffers() {
	if q.trackingSemaphore == 0 || len(q.pending) == 0 {
		return
	}

	finished, res := q.device.driver.GetSemaphoreCounterValue(q.device.device, q.trackingSemaphore)
	if res != Success {
		q.device.error(fmt.Sprintf("vkGetSemaphoreCounterValue on the %s queue failed: %s", q.kind, res))
		return
	}
	if finished > q.lastFinishedID {
		q.lastFinishedID = finished
	}

	remaining := q.pending[:0]
	for _, p := range q.pending {
		if p.id > finished {
			remaining = append(remaining, p)
			continue
		}
		for _, list := range p.lists {
			if notify, ok := list.(rhi.RetirementNotify); ok {
				notify.Retired(p.id)
			}
		}
		metricRetired.WithLabelValues(q.kind.String()).Inc()
	}
	q.pending = remaining
}

func (q *Queue) destroy() {
	if q.trackingSemaphore != 0 {
		q.device.driver.DestroySemaphore(q.device.device, q.trackingSemaphore)
		q.trackingSemaphore = 0
	}
	q.pending = nil
}
