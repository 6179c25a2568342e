package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Uniqueness constraints carry real semantics here:
//   - users.email / users.username: account identity
//   - groups.name (NOCASE): group names unique case-insensitively
//   - memberships (group_id, user_id): one membership per pair; the arbiter
//     for concurrent request/invite races
//   - claims (item_id, group_id): at most one claimer per item per group;
//     the arbiter for concurrent claim races
//
// items.group_id has no foreign key on purpose: group deletion leaves items
// in place, so a surprise item may outlive its scoping group.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL COLLATE NOCASE UNIQUE,
    username TEXT NOT NULL COLLATE NOCASE UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS gift_lists (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    list_id TEXT NOT NULL,
    name TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    added_by_id TEXT NOT NULL,
    high_priority INTEGER NOT NULL DEFAULT 0,
    owner_hidden INTEGER NOT NULL DEFAULT 0,
    group_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (list_id) REFERENCES gift_lists(id)
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL COLLATE NOCASE UNIQUE,
    leader_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (leader_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS memberships (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    selected_list_id TEXT NOT NULL DEFAULT '',
    approved INTEGER NOT NULL DEFAULT 0,
    denied INTEGER NOT NULL DEFAULT 0,
    invited INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    UNIQUE (group_id, user_id),
    FOREIGN KEY (group_id) REFERENCES groups(id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS list_groups (
    group_id TEXT NOT NULL,
    list_id TEXT NOT NULL,
    PRIMARY KEY (group_id, list_id),
    FOREIGN KEY (group_id) REFERENCES groups(id),
    FOREIGN KEY (list_id) REFERENCES gift_lists(id)
);

CREATE TABLE IF NOT EXISTS claims (
    id TEXT PRIMARY KEY,
    item_id TEXT NOT NULL,
    group_id TEXT NOT NULL,
    claimer_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (item_id, group_id),
    FOREIGN KEY (item_id) REFERENCES items(id),
    FOREIGN KEY (group_id) REFERENCES groups(id),
    FOREIGN KEY (claimer_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_gift_lists_owner_id ON gift_lists(owner_id);
CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);
CREATE INDEX IF NOT EXISTS idx_memberships_group_id ON memberships(group_id);
CREATE INDEX IF NOT EXISTS idx_memberships_user_id ON memberships(user_id);
CREATE INDEX IF NOT EXISTS idx_list_groups_list_id ON list_groups(list_id);
CREATE INDEX IF NOT EXISTS idx_claims_group_id ON claims(group_id);
CREATE INDEX IF NOT EXISTS idx_claims_claimer_id ON claims(claimer_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
