package database

// Schema history for the agenda store. Additive steps are guarded with
// IF NOT EXISTS so re-running them is harmless; destructive steps (type
// narrowing, column rename) are one-way and tracked in schema_migrations.

const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username VARCHAR(100) UNIQUE NOT NULL,
	email VARCHAR(255) UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	full_name VARCHAR(255),
	phone VARCHAR(50),
	is_admin BOOLEAN DEFAULT FALSE,
	is_active BOOLEAN DEFAULT TRUE,
	collaborator INTEGER REFERENCES users(id),
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tasks (
	task_id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	status VARCHAR(20) DEFAULT 'todo' CHECK (status IN ('todo', 'in-progress', 'done', 'blocked')),
	priority VARCHAR(20) DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
	category VARCHAR(100),
	estimated_time INTEGER,
	actual_time INTEGER,
	due_date TIMESTAMP,
	scheduled_date TIMESTAMP,
	tags TEXT,
	dependencies TEXT,
	created_at TIMESTAMP DEFAULT NOW(),
	updated_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

CREATE TABLE IF NOT EXISTS calendar_events (
	event_id SERIAL PRIMARY KEY,
	task_id INTEGER REFERENCES tasks(task_id) ON DELETE SET NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	start_time TIMESTAMP,
	end_time TIMESTAMP,
	event_desc TEXT,
	google_event_ref TEXT,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_calendar_events_user_id ON calendar_events(user_id);
CREATE INDEX IF NOT EXISTS idx_calendar_events_task_id ON calendar_events(task_id);

CREATE TABLE IF NOT EXISTS task_sessions (
	session_id SERIAL PRIMARY KEY,
	task_id INTEGER NOT NULL REFERENCES tasks(task_id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	started_at TIMESTAMP NOT NULL,
	ended_at TIMESTAMP,
	duration_minutes INTEGER,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_task_sessions_task_id ON task_sessions(task_id);
CREATE INDEX IF NOT EXISTS idx_task_sessions_user_id ON task_sessions(user_id);

CREATE TABLE IF NOT EXISTS user_google_accounts (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	access_token TEXT NOT NULL,
	refresh_token TEXT,
	token_expiry TIMESTAMP,
	token_uri TEXT,
	client_id TEXT,
	client_secret TEXT,
	scopes TEXT[],
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_github_accounts (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	access_token TEXT NOT NULL,
	token_type VARCHAR(50),
	scopes TEXT,
	github_username VARCHAR(255),
	github_user_id BIGINT,
	connected_at TIMESTAMP DEFAULT NOW()
);
`

const enhancedWorkflow = `
CREATE TABLE IF NOT EXISTS event_collaborators (
	collab_id SERIAL PRIMARY KEY,
	event_id INTEGER NOT NULL REFERENCES calendar_events(event_id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	status VARCHAR(20) DEFAULT 'pending',
	added_at TIMESTAMP DEFAULT NOW(),
	UNIQUE(event_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_event_collaborators_event_id ON event_collaborators(event_id);
CREATE INDEX IF NOT EXISTS idx_event_collaborators_user_id ON event_collaborators(user_id);

CREATE TABLE IF NOT EXISTS meeting_links (
	link_id SERIAL PRIMARY KEY,
	event_id INTEGER NOT NULL REFERENCES calendar_events(event_id) ON DELETE CASCADE,
	platform VARCHAR(50) DEFAULT 'google_meet' CHECK (platform IN ('google_meet', 'zoom', 'teams', 'custom')),
	meeting_code VARCHAR(255),
	meeting_url TEXT,
	created_at TIMESTAMP DEFAULT NOW(),
	UNIQUE(event_id)
);

CREATE INDEX IF NOT EXISTS idx_meeting_links_event_id ON meeting_links(event_id);

ALTER TABLE calendar_events ADD COLUMN IF NOT EXISTS event_type VARCHAR(20) DEFAULT 'task' CHECK (event_type IN ('task', 'meeting', 'event'));
ALTER TABLE calendar_events ADD COLUMN IF NOT EXISTS is_calendar_synced BOOLEAN DEFAULT FALSE;

CREATE INDEX IF NOT EXISTS idx_calendar_events_event_type ON calendar_events(event_type);
CREATE INDEX IF NOT EXISTS idx_calendar_events_user_event_type ON calendar_events(user_id, event_type);

CREATE OR REPLACE VIEW upcoming_meetings AS
SELECT
	ce.event_id,
	ce.user_id AS organizer_id,
	u.username AS organizer_username,
	ce.start_time,
	ce.end_time,
	ce.event_desc,
	ce.event_type,
	ml.meeting_url,
	ml.platform,
	COUNT(ec.collab_id) AS collaborator_count
FROM calendar_events ce
LEFT JOIN users u ON ce.user_id = u.id
LEFT JOIN meeting_links ml ON ce.event_id = ml.event_id
LEFT JOIN event_collaborators ec ON ce.event_id = ec.event_id
WHERE ce.event_type = 'meeting'
  AND ce.start_time > NOW()
GROUP BY ce.event_id, u.username, ml.meeting_url, ml.platform
ORDER BY ce.start_time ASC;

CREATE OR REPLACE VIEW user_tasks AS
SELECT
	t.task_id,
	t.user_id,
	t.title,
	t.description,
	t.status,
	t.priority,
	t.category,
	t.due_date,
	ce.event_id,
	ce.start_time AS scheduled_time
FROM tasks t
LEFT JOIN calendar_events ce ON t.task_id = ce.task_id;
`

// timeColumnSplit narrows calendar timestamps into pure TIME/DATE pairs.
// The dependent view must be dropped before the type change and recreated
// with the date-aware future filter; rows predating the new columns are
// backfilled from created_at before the view returns.
var timeColumnSplit = []string{
	`DROP VIEW IF EXISTS upcoming_meetings`,
	`DROP VIEW IF EXISTS user_tasks`,

	`ALTER TABLE calendar_events ALTER COLUMN start_time TYPE TIME WITHOUT TIME ZONE USING start_time::time`,
	`ALTER TABLE calendar_events ALTER COLUMN end_time TYPE TIME WITHOUT TIME ZONE USING end_time::time`,
	`ALTER TABLE calendar_events ADD COLUMN IF NOT EXISTS due_date DATE`,
	`ALTER TABLE calendar_events ADD COLUMN IF NOT EXISTS scheduled_date DATE`,

	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS start_time TIME WITHOUT TIME ZONE`,
	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS end_time TIME WITHOUT TIME ZONE`,
	`ALTER TABLE tasks ALTER COLUMN due_date TYPE DATE USING due_date::date`,
	`ALTER TABLE tasks ALTER COLUMN scheduled_date TYPE DATE USING scheduled_date::date`,

	`UPDATE calendar_events SET scheduled_date = created_at::date, due_date = created_at::date WHERE scheduled_date IS NULL`,

	`CREATE OR REPLACE VIEW upcoming_meetings AS
	SELECT ce.event_id,
		ce.user_id AS organizer_id,
		u.username AS organizer_username,
		ce.start_time,
		ce.end_time,
		ce.scheduled_date,
		ce.event_desc,
		ce.event_type,
		ml.meeting_url,
		ml.platform,
		COUNT(ec.collab_id) AS collaborator_count
	FROM calendar_events ce
	LEFT JOIN users u ON ce.user_id = u.id
	LEFT JOIN meeting_links ml ON ce.event_id = ml.event_id
	LEFT JOIN event_collaborators ec ON ce.event_id = ec.event_id
	WHERE ce.event_type = 'meeting'
	  AND (
		(ce.scheduled_date IS NOT NULL AND (ce.scheduled_date + ce.start_time) > NOW())
		OR
		(ce.scheduled_date IS NULL AND ce.start_time > NOW()::time)
	  )
	GROUP BY ce.event_id, u.username, ml.meeting_url, ml.platform
	ORDER BY (ce.scheduled_date + ce.start_time)`,

	`CREATE OR REPLACE VIEW user_tasks AS
	SELECT
		t.task_id,
		t.user_id,
		t.title,
		t.description,
		t.status,
		t.priority,
		t.category,
		t.due_date,
		ce.event_id,
		(ce.scheduled_date + ce.start_time) AS scheduled_time
	FROM tasks t
	LEFT JOIN calendar_events ce ON t.task_id = ce.task_id`,
}

// collaboratorRedesign replaces the single self-referencing collaborator
// column with an id array plus an explicit request table carrying the
// pending/accepted/rejected lifecycle.
var collaboratorRedesign = []string{
	`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_collaborator_fkey`,
	`ALTER TABLE users ALTER COLUMN collaborator TYPE INTEGER[] USING CASE WHEN collaborator IS NULL THEN '{}'::integer[] ELSE ARRAY[collaborator] END`,
	`ALTER TABLE users ALTER COLUMN collaborator SET DEFAULT '{}'`,
	`ALTER TABLE users RENAME COLUMN collaborator TO collaborator_ids`,

	`CREATE TABLE IF NOT EXISTS collaboration_requests (
		request_id SERIAL PRIMARY KEY,
		sender_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
		created_at TIMESTAMP DEFAULT NOW(),
		UNIQUE(sender_id, receiver_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collaboration_requests_receiver_id ON collaboration_requests(receiver_id)`,
}
