package database

import "gorm.io/gorm"

func (db *DB) Categories() ([]Category, error) {
	var cats []Category
	err := db.conn.Order("id").Find(&cats).Error
	return cats, err
}

// CategoriesByID resolves ids in order. When one is unknown it is returned
// as missing, with ErrNotFound.
func (db *DB) CategoriesByID(ids []uint) (cats []Category, missing uint, err error) {
	if len(ids) == 0 {
		return []Category{}, 0, nil
	}
	var found []Category
	if err := db.conn.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	cats = make([]Category, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, id, ErrNotFound
		}
		cats = append(cats, c)
	}
	return cats, 0, nil
}

// CreateStore fails with ErrDuplicate when the owner already has a store.
func (db *DB) CreateStore(s Store) (Store, error) {
	if err := db.conn.Create(&s).Error; err != nil {
		return Store{}, translate(err)
	}
	return s, nil
}

func (db *DB) StoreByOwner(ownerID uint) (Store, error) {
	var s Store
	err := db.conn.Preload("Categories").Where("owner_id = ?", ownerID).First(&s).Error
	return s, translate(err)
}

func (db *DB) CreatePost(p Post) (Post, error) {
	p.IsActive = true
	if err := db.conn.Create(&p).Error; err != nil {
		return Post{}, translate(err)
	}
	return p, nil
}

func (db *DB) postQuery() *gorm.DB {
	return db.conn.
		Preload("Images").
		Preload("StoreCategories").
		Preload("PartnershipCategories")
}

// ActivePost returns an active post by id.
func (db *DB) ActivePost(id uint) (Post, error) {
	var p Post
	err := db.postQuery().Where("is_active = ?", true).First(&p, id).Error
	return p, translate(err)
}

// Posts returns posts newest first. authorID zero lists every active post;
// otherwise all posts of that author, inactive included.
func (db *DB) Posts(authorID uint) ([]Post, error) {
	q := db.postQuery()
	if authorID == 0 {
		q = q.Where("is_active = ?", true)
	} else {
		q = q.Where("author_id = ?", authorID)
	}

	var posts []Post
	err := q.Order("created_at DESC").Order("id DESC").Find(&posts).Error
	return posts, err
}
