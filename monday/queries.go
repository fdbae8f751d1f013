package monday

// Fixed query and mutation catalog. Every request the proxy makes comes from here,
// except the custom-query passthrough.

const itemFields = `
	id
	name
	state
	group { id title }
	column_values { id type text value column { title } }`

const QueryMe = `query { me { id name email account { id name } } }`

const QueryBoards = `query ($limit: Int!, $itemLimit: Int!) {
	boards(limit: $limit) {
		id
		name
		description
		board_kind
		state
		items_count
		workspace { id name }
		owners { id name }
		subscribers { id name }
		groups { id title }
		columns { id title type }
		items_page(limit: $itemLimit) {
			cursor
			items {` + itemFields + `
			}
		}
	}
}`

const QueryBoard = `query ($ids: [ID!]) {
	boards(ids: $ids) {
		id
		name
		description
		board_kind
		state
		items_count
		workspace { id name }
		owners { id name }
		subscribers { id name }
		groups { id title }
		columns { id title type }
		items_page(limit: 500) {
			cursor
			items {` + itemFields + `
			}
		}
	}
}`

const MutationCreateBoard = `mutation ($name: String!, $kind: BoardKind!, $description: String) {
	create_board(board_name: $name, board_kind: $kind, description: $description) {
		id
		name
		board_kind
	}
}`

const QueryBoardItems = `query ($ids: [ID!], $limit: Int!) {
	boards(ids: $ids) {
		id
		name
		items_page(limit: $limit) {
			cursor
			items {` + itemFields + `
			}
		}
	}
}`

const QueryRecentItems = `query ($boardLimit: Int!, $limit: Int!) {
	boards(limit: $boardLimit) {
		id
		name
		items_page(limit: $limit) {
			cursor
			items {` + itemFields + `
			}
		}
	}
}`

const MutationCreateItem = `mutation ($boardId: ID!, $itemName: String!, $groupId: String) {
	create_item(board_id: $boardId, item_name: $itemName, group_id: $groupId) {
		id
		name
	}
}`

const MutationUpdateItemName = `mutation ($boardId: ID!, $itemId: ID!, $name: String!) {
	change_simple_column_value(board_id: $boardId, item_id: $itemId, column_id: "name", value: $name) {
		id
		name
	}
}`

const MutationUpdateItemColumns = `mutation ($boardId: ID!, $itemId: ID!, $columnValues: JSON!) {
	change_multiple_column_values(board_id: $boardId, item_id: $itemId, column_values: $columnValues) {
		id
		name
	}
}`

const QueryUsers = `query {
	users {
		id
		name
		email
		enabled
		is_admin
		is_guest
		title
		teams { id name }
	}
}`

const QueryTeams = `query {
	teams {
		id
		name
		picture_url
		users { id name }
	}
}`

const QueryActivityLogs = `query ($boardLimit: Int!, $limit: Int!) {
	boards(limit: $boardLimit) {
		id
		name
		activity_logs(limit: $limit) {
			id
			event
			entity
			data
			user_id
			created_at
		}
	}
}`

const QueryUpdates = `query ($limit: Int!) {
	updates(limit: $limit) {
		id
		body
		text_body
		created_at
		item_id
		creator { id name }
	}
}`

const MutationCreateUpdate = `mutation ($itemId: ID!, $body: String!) {
	create_update(item_id: $itemId, body: $body) {
		id
		body
		created_at
	}
}`

const QueryStats = `query {
	boards(limit: 100) { id name state items_count workspace { id } }
	users { id enabled is_admin is_guest }
	teams { id }
}`

const MutationChangeTimeline = `mutation ($boardId: ID!, $itemId: ID!, $columnId: String!, $value: JSON!) {
	change_column_value(board_id: $boardId, item_id: $itemId, column_id: $columnId, value: $value) {
		id
		name
	}
}`

const MutationCreateTimelineColumn = `mutation ($boardId: ID!, $title: String!) {
	create_column(board_id: $boardId, title: $title, column_type: timeline) {
		id
		title
		type
	}
}`
