package lisp

// Map keys are encoded as strings.  Keyword keys carry a reserved prefix
// byte, which can never begin UTF-8 text, so the string "a" and the keyword
// :a occupy distinct slots.
const keywordKeyPrefix = "\xff"

// mapKey encodes a key value for storage.  Only strings and keywords are
// valid map keys.
func mapKey(v *LVal) (string, bool) {
	switch v.Type {
	case LString:
		return v.Str, true
	case LKeyword:
		return keywordKeyPrefix + v.Str, true
	}
	return "", false
}

// mapKeyVal decodes a stored key back into its value form.
func mapKeyVal(k string) *LVal {
	if len(k) > 0 && k[0] == keywordKeyPrefix[0] {
		return Keyword(k[1:])
	}
	return String(k)
}

// MapSet binds key to val in the map m.  Only strings and keywords may be
// map keys; any other key type is a type-mismatch error.
func MapSet(m *LVal, key *LVal, val *LVal) *LVal {
	return mapSet(m, key, val)
}

func mapSet(m *LVal, key *LVal, val *LVal) *LVal {
	k, ok := mapKey(key)
	if !ok {
		return ErrorConditionf(ErrorConditionType, "unhashable type: %s", key.Type)
	}
	if _, exists := m.Map[k]; !exists {
		m.Keys = append(m.Keys, k)
	}
	m.Map[k] = val
	return Nil()
}

func mapGet(m *LVal, key *LVal) *LVal {
	k, ok := mapKey(key)
	if !ok {
		return ErrorConditionf(ErrorConditionType, "unhashable type: %s", key.Type)
	}
	if v, ok := m.Map[k]; ok {
		return v
	}
	return Nil()
}

func mapContains(m *LVal, key *LVal) *LVal {
	k, ok := mapKey(key)
	if !ok {
		return ErrorConditionf(ErrorConditionType, "unhashable type: %s", key.Type)
	}
	_, exists := m.Map[k]
	return Bool(exists)
}

func mapDel(m *LVal, key *LVal) *LVal {
	k, ok := mapKey(key)
	if !ok {
		return ErrorConditionf(ErrorConditionType, "unhashable type: %s", key.Type)
	}
	if _, exists := m.Map[k]; !exists {
		return Nil()
	}
	delete(m.Map, k)
	for i, existing := range m.Keys {
		if existing == k {
			m.Keys = append(m.Keys[:i], m.Keys[i+1:]...)
			break
		}
	}
	return Nil()
}

// mapCopy returns a map sharing no key structure with m.  The values are
// shared, consistent with values being immutable.
func mapCopy(m *LVal) *LVal {
	cp := SortedMap()
	cp.Keys = make([]string, len(m.Keys))
	copy(cp.Keys, m.Keys)
	for k, v := range m.Map {
		cp.Map[k] = v
	}
	return cp
}
