package classes

import (
	"bytes"
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

// Key layout:
//
//	class/<id>        class document (JSON, files embedded)
//	pass/<passphrase> class id
//	file/<file id>    owning class id
var (
	classPrefix = []byte("class/")
	passPrefix  = []byte("pass/")
	filePrefix  = []byte("file/")
)

func classKey(id models.ClassID) []byte { return append(bytes.Clone(classPrefix), id.String()...) }

func passKey(p models.PassPhrase) []byte { return append(bytes.Clone(passPrefix), p...) }

func fileKey(id models.FileID) []byte { return append(bytes.Clone(filePrefix), id.String()...) }

// BadgerRepository is an embedded persistent backend. Each operation runs in
// its own badger transaction.
type BadgerRepository struct {
	db *badger.DB
}

var _ Repository = (*BadgerRepository)(nil)

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

// storeErr keeps domain errors and wraps everything else as a connection
// failure.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case common.IsNotFound(err),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrConnection),
		errors.Is(err, common.ErrSerializeFailed),
		errors.Is(err, common.ErrDeserializeFailed):
		return err
	default:
		return connErr(err)
	}
}

func has(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func loadClass(txn *badger.Txn, id models.ClassID) (models.Class, error) {
	item, err := txn.Get(classKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Class{}, common.ErrClassNotFound
	}
	if err != nil {
		return models.Class{}, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return models.Class{}, err
	}
	c, err := decode[models.Class](raw)
	if err != nil {
		return models.Class{}, err
	}
	return c.Clone(), nil
}

func storeClass(txn *badger.Txn, c models.Class) error {
	doc, err := encode(c)
	if err != nil {
		return err
	}
	return txn.Set(classKey(c.ID), doc)
}

// owner resolves the class id indexed under key, or returns notFound.
func owner(txn *badger.Txn, key []byte, notFound error) (models.ClassID, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.ClassID{}, notFound
	}
	if err != nil {
		return models.ClassID{}, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return models.ClassID{}, err
	}
	id, err := models.ParseClassID(string(raw))
	if err != nil {
		return models.ClassID{}, errors.Join(common.ErrDeserializeFailed, err)
	}
	return id, nil
}

func (r *BadgerRepository) GetAllClasses(_ context.Context) ([]models.ClassSummary, error) {
	result := []models.ClassSummary{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(classPrefix); it.ValidForPrefix(classPrefix); it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			s, err := decode[models.ClassSummary](raw)
			if err != nil {
				return err
			}
			result = append(result, s)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

func (r *BadgerRepository) SaveNewClass(_ context.Context, c models.Class) error {
	c = c.Clone()
	return storeErr(r.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{classKey(c.ID), passKey(c.PassPhrase)} {
			taken, err := has(txn, key)
			if err != nil {
				return err
			}
			if taken {
				return common.ErrAlreadyExists
			}
		}
		if err := storeClass(txn, c); err != nil {
			return err
		}
		if err := txn.Set(passKey(c.PassPhrase), []byte(c.ID.String())); err != nil {
			return err
		}
		for _, f := range c.Files {
			if err := txn.Set(fileKey(f.ID), []byte(c.ID.String())); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *BadgerRepository) GetClassByID(_ context.Context, id models.ClassID) (models.Class, error) {
	var c models.Class
	err := r.db.View(func(txn *badger.Txn) (err error) {
		c, err = loadClass(txn, id)
		return err
	})
	return c, storeErr(err)
}

func (r *BadgerRepository) GetClassByPassPhrase(_ context.Context, p models.PassPhrase) (models.Class, error) {
	var c models.Class
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := owner(txn, passKey(p), common.ErrClassNotFound)
		if err != nil {
			return err
		}
		c, err = loadClass(txn, id)
		return err
	})
	return c, storeErr(err)
}

func (r *BadgerRepository) RenameClass(_ context.Context, id models.ClassID, name string) error {
	return storeErr(r.db.Update(func(txn *badger.Txn) error {
		c, err := loadClass(txn, id)
		if err != nil {
			return err
		}
		c.Name = name
		return storeClass(txn, c)
	}))
}

func (r *BadgerRepository) DeleteClass(_ context.Context, id models.ClassID) (models.Class, error) {
	var removed models.Class
	err := r.db.Update(func(txn *badger.Txn) error {
		c, err := loadClass(txn, id)
		if err != nil {
			return err
		}
		keys := [][]byte{classKey(id), passKey(c.PassPhrase)}
		for _, f := range c.Files {
			keys = append(keys, fileKey(f.ID))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		removed = c
		return nil
	})
	return removed, storeErr(err)
}

func (r *BadgerRepository) probe(key []byte) (bool, error) {
	var ok bool
	err := r.db.View(func(txn *badger.Txn) (err error) {
		ok, err = has(txn, key)
		return err
	})
	return ok, storeErr(err)
}

func (r *BadgerRepository) ClassIDExists(_ context.Context, id models.ClassID) (bool, error) {
	return r.probe(classKey(id))
}

func (r *BadgerRepository) PassPhraseExists(_ context.Context, p models.PassPhrase) (bool, error) {
	return r.probe(passKey(p))
}

func (r *BadgerRepository) FileIDExists(_ context.Context, id models.FileID) (bool, error) {
	return r.probe(fileKey(id))
}

func (r *BadgerRepository) GetFiles(ctx context.Context, id models.ClassID) ([]models.File, error) {
	c, err := r.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Files, nil
}

func (r *BadgerRepository) AddNewFile(_ context.Context, id models.ClassID, f models.File) error {
	return storeErr(r.db.Update(func(txn *badger.Txn) error {
		c, err := loadClass(txn, id)
		if err != nil {
			return err
		}
		c.Files = append(c.Files, f)
		if err := storeClass(txn, c); err != nil {
			return err
		}
		return txn.Set(fileKey(f.ID), []byte(id.String()))
	}))
}

// fileIn finds id inside its owning class. A dangling index entry is
// reported as a missing file.
func fileIn(txn *badger.Txn, id models.FileID) (models.Class, int, error) {
	cid, err := owner(txn, fileKey(id), common.ErrFileNotFound)
	if err != nil {
		return models.Class{}, -1, err
	}
	c, err := loadClass(txn, cid)
	if errors.Is(err, common.ErrClassNotFound) {
		return models.Class{}, -1, common.ErrFileNotFound
	}
	if err != nil {
		return models.Class{}, -1, err
	}
	i := slices.IndexFunc(c.Files, func(f models.File) bool { return f.ID == id })
	if i < 0 {
		return models.Class{}, -1, common.ErrFileNotFound
	}
	return c, i, nil
}

func (r *BadgerRepository) GetFileByID(_ context.Context, id models.FileID) (models.File, error) {
	var f models.File
	err := r.db.View(func(txn *badger.Txn) error {
		c, i, err := fileIn(txn, id)
		if err != nil {
			return err
		}
		f = c.Files[i]
		return nil
	})
	return f, storeErr(err)
}

func (r *BadgerRepository) DeleteFile(_ context.Context, id models.FileID) (models.File, error) {
	var removed models.File
	err := r.db.Update(func(txn *badger.Txn) error {
		c, i, err := fileIn(txn, id)
		if err != nil {
			return err
		}
		removed = c.Files[i]
		c.Files = slices.Delete(c.Files, i, i+1)
		if err := storeClass(txn, c); err != nil {
			return err
		}
		return txn.Delete(fileKey(id))
	})
	return removed, storeErr(err)
}

func (r *BadgerRepository) Ping(_ context.Context) error {
	if r.db.IsClosed() {
		return connErr(errors.New("badger: store is closed"))
	}
	return nil
}
