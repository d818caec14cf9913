package process_psutil

import (
	"errors"
	"testing"

	"procinfo/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProc struct {
	pid     int32
	name    string
	ppid    int32
	status  []string
	nice    int32
	nameErr error
}

func (p fakeProc) PID() int32                { return p.pid }
func (p fakeProc) Name() (string, error)     { return p.name, p.nameErr }
func (p fakeProc) Ppid() (int32, error)      { return p.ppid, nil }
func (p fakeProc) Status() ([]string, error) { return p.status, nil }
func (p fakeProc) Nice() (int32, error)      { return p.nice, nil }

func lister(procs ...Proc) Lister {
	return func() ([]Proc, error) { return procs, nil }
}

func TestPsutilTableSnapshot(t *testing.T) {
	table := NewPsutilTable(lister(
		fakeProc{pid: 1, name: "init", ppid: 0, status: []string{"sleep"}},
		fakeProc{pid: 5, name: "worker-with-a-long-name", ppid: 1, status: []string{"running"}, nice: 10},
		fakeProc{pid: 6, name: "gone", ppid: 1, nameErr: errors.New("no such process")},
		fakeProc{pid: 7, name: "zombie", ppid: 5, status: []string{"zombie"}, nice: -5},
	))

	snap, err := table.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 4, snap.Len())
	assert.Equal(t, process.IdlePID, snap.Records()[0].PID)

	worker := snap.Record(5)
	require.NotNil(t, worker)
	assert.Equal(t, "worker-with-a-l", worker.Name)
	assert.Equal(t, process.ProcessRunning, worker.State)
	assert.Equal(t, 130, worker.Priority)
	assert.Equal(t, 130, worker.StaticPriority)
	assert.Equal(t, 130, worker.NormalPriority)

	zombie := snap.Record(7)
	require.NotNil(t, zombie)
	assert.Equal(t, process.ProcessZombie, zombie.State)
	assert.Equal(t, 115, zombie.Priority)

	assert.Nil(t, snap.Record(6))
	assert.Equal(t, process.ProcessID(5), snap.Parent(7).PID)
	assert.Equal(t, process.IdlePID, snap.Parent(1).PID)
	assert.Equal(t, process.ProcessSleeping, snap.Record(1).State)
}

func TestPsutilTableListError(t *testing.T) {
	table := NewPsutilTable(func() ([]Proc, error) { return nil, errors.New("boom") })
	_, err := table.Snapshot()
	require.ErrorIs(t, err, process.ErrEnumerationFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestPsutilTableSkipsNonPositivePIDs(t *testing.T) {
	table := NewPsutilTable(lister(
		fakeProc{pid: 0, name: "kernel_task", ppid: 0},
		fakeProc{pid: 1, name: "launchd", ppid: 0},
	))
	snap, err := table.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, process.IdleName, snap.Record(0).Name)
}
