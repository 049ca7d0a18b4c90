// Package jobstore keeps processing results in a bolt database.
// Every job gets its own bucket; records are stored as JSON under
// their index, job metadata under the "job" key.
package jobstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"github.com/mrrlab/brickgen/rewrite"
)

// log is the global logging variable.
var log = logging.MustGetLogger("jobstore")

// JOB is the key of the job metadata inside a job bucket.
var JOB = []byte("job")

// RECORDS is the name of the nested bucket with records.
var RECORDS = []byte("records")

// ErrNoJob is returned when a job is not in the database.
var ErrNoJob = errors.New("job not found")

// Job describes a single run.
type Job struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Standard string    `json:"standard"`
	AddEnds  bool      `json:"addEnds"`
	Seed     int64     `json:"seed"`
	Started  time.Time `json:"started"`
	Records  int       `json:"records"`
	Runtime  float64   `json:"runtime"`
}

// Store saves jobs and their results.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveJob saves job metadata, creating the job bucket if needed.
func (s *Store) SaveJob(job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		log.Error("Error serializing job", err)
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(job.ID))
		if err != nil {
			return err
		}
		return b.Put(JOB, data)
	})
}

// SaveResult saves the result of record i of a job.
func (s *Store) SaveResult(jobID string, i int, res *rewrite.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		log.Error("Error serializing result", err)
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(jobID))
		if err != nil {
			return err
		}
		rb, err := b.CreateBucketIfNotExists(RECORDS)
		if err != nil {
			return err
		}
		return rb.Put(itob(i), data)
	})
	if err != nil {
		log.Error("Error saving result", err)
	}
	return err
}

// LoadJob loads job metadata.
func (s *Store) LoadJob(jobID string) (*Job, error) {
	var job *Job
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(jobID))
		if b == nil {
			return ErrNoJob
		}
		v := b.Get(JOB)
		if v == nil {
			return ErrNoJob
		}
		return json.Unmarshal(v, &job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// LoadResults loads all results of a job in record order.
func (s *Store) LoadResults(jobID string) ([]*rewrite.Result, error) {
	var results []*rewrite.Result
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(jobID))
		if b == nil {
			return ErrNoJob
		}
		rb := b.Bucket(RECORDS)
		if rb == nil {
			return nil
		}
		return rb.ForEach(func(k, v []byte) error {
			var res rewrite.Result
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			results = append(results, &res)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Jobs returns the IDs of all stored jobs.
func (s *Store) Jobs() (ids []string, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			ids = append(ids, string(name))
			return nil
		})
	})
	return
}

// itob encodes the record index as a big endian key, so cursor
// order is record order.
func itob(i int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(i))
	return b
}
